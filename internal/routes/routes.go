package routes

import (
	"github.com/danivc/BioHackerBack/internal/handlers"
	"github.com/danivc/BioHackerBack/internal/services"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, store storage.Store) {
	engagementService := services.NewEngagementService(store, services.DefaultStreakPolicy())
	protocolService := services.NewProtocolService(store, engagementService)
	forumService := services.NewForumService(store)

	userHandler := handlers.NewUserHandler(store, engagementService)
	biometricHandler := handlers.NewBiometricHandler(engagementService)
	protocolHandler := handlers.NewProtocolHandler(protocolService)
	achievementHandler := handlers.NewAchievementHandler(store)
	forumHandler := handlers.NewForumHandler(forumService)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Get("/:id/engagement", userHandler.GetEngagement)

	api.Post("/check-in", biometricHandler.CheckIn)

	biometrics := api.Group("/biometrics")
	biometrics.Post("", biometricHandler.CreateBiometric)
	biometrics.Get("", biometricHandler.ListBiometrics)
	biometrics.Get("/recent", biometricHandler.RecentBiometrics)

	protocols := api.Group("/protocols")
	protocols.Get("", protocolHandler.ListProtocols)
	protocols.Get("/active", protocolHandler.ListActiveProtocols)
	protocols.Get("/:id", protocolHandler.GetProtocol)
	protocols.Post("", protocolHandler.CreateProtocol)
	protocols.Patch("/:id", protocolHandler.UpdateProtocol)
	protocols.Delete("/:id", protocolHandler.DeleteProtocol)

	api.Post("/protocol-check-ins", protocolHandler.CheckIn)
	api.Get("/protocol-check-ins", protocolHandler.ListCheckIns)

	achievements := api.Group("/achievements")
	achievements.Get("", achievementHandler.ListAchievements)
	achievements.Post("", achievementHandler.CreateAchievement)

	api.Get("/forum-posts", forumHandler.ListPosts)
	api.Get("/forum-posts/:id", forumHandler.GetPost)
	api.Post("/forum-posts", forumHandler.CreatePost)
	api.Get("/forum-comments", forumHandler.ListComments)
	api.Post("/forum-comments", forumHandler.CreateComment)
}
