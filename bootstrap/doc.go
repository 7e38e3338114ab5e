// Package bootstrap runs an application's lifecycle: start registered
// components, run configure callbacks and hooks, print a startup summary,
// wait for SIGINT/SIGTERM (or run a finite task) and stop everything in
// reverse order.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(recordings)
//	app.RegisterComponent(server.NewComponent(srv))
//	return app.Run(ctx)
package bootstrap
