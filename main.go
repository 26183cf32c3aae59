// Package main is the entry point for the cricmetrics CLI tool, which computes
// batting, bowling, team and venue statistics from ball-by-ball cricket data.
package main

import "github.com/pable/go-cricket-metrics/cmd"

func main() {
	cmd.Execute()
}
