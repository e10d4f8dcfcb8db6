package main

import "github.com/road-estimator/road-estimator-api/cmd"

func main() {
	cmd.Execute()
}
