package main

import "gparts/presupuestos_backend/internal/app"

func main() {
	app.Run()
}
