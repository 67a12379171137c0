package internal

import (
	"luckypick/internal/controllers"
	"luckypick/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, limiter providers.RateLimiterInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/generate", limiter.Wrap(http.HandlerFunc(apiController.Generate)))
	routers.Get("/batch", http.HandlerFunc(apiController.GetBatch))

	routers.Get("/fixed", http.HandlerFunc(apiController.GetFixed))
	routers.Post("/fixed/toggle", http.HandlerFunc(apiController.ToggleFixed))
	routers.Post("/fixed/clear", http.HandlerFunc(apiController.ClearFixed))

	routers.Methods("/saved", map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(apiController.GetSaved),
		http.MethodPost: http.HandlerFunc(apiController.SaveResult),
	})
	routers.Post("/saved/delete", http.HandlerFunc(apiController.DeleteSaved))
	routers.Post("/saved/clear", http.HandlerFunc(apiController.ClearSaved))

	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/frequency", http.HandlerFunc(apiController.GetFrequency))
	routers.Get("/analysis", http.HandlerFunc(apiController.GetAnalysis))
	routers.Get("/premium", http.HandlerFunc(apiController.GetPremium))
	routers.Get("/simulation", http.HandlerFunc(apiController.GetSimulation))

	routers.Methods("/theme", map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(apiController.GetTheme),
		http.MethodPost: http.HandlerFunc(apiController.SetTheme),
	})
	return routers
}
