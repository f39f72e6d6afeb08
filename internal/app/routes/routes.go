package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ctecscope/ctecscope/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	searchController *controllers.SearchController,
	offeringController *controllers.OfferingController,
	courseController *controllers.CourseController,
	instructorController *controllers.InstructorController,
	requirementController *controllers.RequirementController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/search", searchController.Search)

	offerings := v1.Group("/offerings")
	{
		offerings.GET("", offeringController.ListOfferings)
		offerings.POST("", offeringController.IngestOffering)
		offerings.GET("/:id", offeringController.GetOffering)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:code", courseController.GetCourseByCode)
	}

	instructors := v1.Group("/instructors")
	{
		instructors.GET("/:id", instructorController.GetInstructorProfile)
	}

	v1.GET("/requirements", requirementController.ListRequirements)
}
