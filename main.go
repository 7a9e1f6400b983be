package main

import "github.com/inovacc/repofinder/cmd"

func main() {
	cmd.Execute()
}
