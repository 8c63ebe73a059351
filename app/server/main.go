package main

import (
	"article-planner/app/server/routes"
	"article-planner/app/server/setup"
)

func main() {
	setup.MustLoadEnv()
	setup.InitLogging()
	setup.MustInitDb()
	setup.MustInitClients()

	setup.StartServer(routes.NewRouter())
}
