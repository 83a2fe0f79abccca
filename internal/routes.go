package internal

import (
	"net/http"
	"spd/internal/controllers"
	"spd/internal/providers"
	"spd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/stand", http.HandlerFunc(apiController.GetStand))
	routers.Post("/stand/set", http.HandlerFunc(apiController.SetStand))
	routers.Post("/stand/awaken", http.HandlerFunc(apiController.Awaken))
	routers.Get("/stand/random", http.HandlerFunc(apiController.RandomStand))
	routers.Get("/usage", http.HandlerFunc(apiController.GetUsage))
	routers.Post("/admin/migrate", http.HandlerFunc(apiController.Migrate))
	return routers
}
