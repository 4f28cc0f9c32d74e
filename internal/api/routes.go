package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles the dependencies of the HTTP handlers.
type Services struct {
	Auth     service.AuthService
	Exercise service.ExerciseService
	Library  service.LibraryService
	Workout  service.WorkoutService
	Insights service.InsightsService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	libraryHandler := NewLibraryHandler(services.Library)
	workoutHandler := NewWorkoutHandler(services.Workout)
	insightsHandler := NewInsightsHandler(services.Insights)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret), RoleMiddleware(domain.RoleAthlete, domain.RoleCoach))
	{
		protected.GET("/me", authHandler.Me)

		libraryGroup := protected.Group("/library")
		{
			libraryGroup.GET("/exercises", libraryHandler.SearchExercises)
			libraryGroup.GET("/exercises/:id", libraryHandler.GetExercise)
			libraryGroup.POST("/exercises/:id/import", libraryHandler.ImportExercise)
			libraryGroup.GET("/facets", libraryHandler.GetFacets)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
		}

		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("", workoutHandler.CreateRoutine)
			routineGroup.GET("", workoutHandler.GetRoutines)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
		}

		insightsGroup := protected.Group("/insights")
		{
			insightsGroup.GET("", insightsHandler.GetInsights)
			insightsGroup.GET("/exercises/:exerciseId/progress", insightsHandler.GetExerciseProgress)
			insightsGroup.GET("/workouts/:workoutId/records", insightsHandler.GetWorkoutRecords)
		}
	}
}
