/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/gamesetuphub/backend/cmd"

func main() {
	cmd.Execute()
}
