package main

import "github.com/gridflow/isurf/cmd"

func main() {
	cmd.Execute()
}
