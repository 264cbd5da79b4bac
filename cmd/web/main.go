package main

import "cloudedumatch_backend/internal/app"

func main() {
	app.Run()
}
