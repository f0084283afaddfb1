/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/gridops/outage-gin/cmd"

func main() {
	cmd.Execute()
}
