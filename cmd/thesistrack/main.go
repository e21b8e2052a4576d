package main

import (
	"ThesisTrack/internal/bootstrap"
	pkg "ThesisTrack/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.EchoModules,
	)

	app.Run()
}
