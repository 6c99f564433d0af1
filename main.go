package main

import (
	"exusiai.dev/mapbook/cmd/app"
)

func main() {
	app.Run()
}
