package main

import "nepshift_backend/internal/app"

func main() {
	app.Run()
}
