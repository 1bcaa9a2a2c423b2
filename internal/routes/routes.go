package routes

import (
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/handlers"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Users      *handlers.UsersHandler
	Org        *handlers.OrgHandler
	Surveys    *handlers.SurveysHandler
	Responses  *handlers.ResponsesHandler
	Approvals  *handlers.ApprovalsHandler
	Audit      *handlers.AuditHandler
	Operations *handlers.OperationsHandler
	Reports    *handlers.ReportsHandler
	Uploads    *handlers.UploadsHandler
}

// RegisterPublicRoutes mounts what anonymous callers and respondents may reach.
func RegisterPublicRoutes(rg *gin.RouterGroup, h Handlers) {
	{
		rg.POST("/auth/login", h.Auth.Login)
		rg.GET("/csrf-token", h.Auth.CSRFToken)

		rg.GET("/public/surveys/:id", h.Surveys.GetPublic)
		rg.POST("/responses", h.Responses.Submit)
		rg.GET("/responses/duplicate", h.Responses.CheckDuplicate)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, h Handlers) {
	admin := middleware.RequireRole(entity.RoleAdmin)
	staff := middleware.RequireRole(entity.RoleAdmin, entity.RoleITLead, entity.RoleDepartmentHead)
	proposers := middleware.RequireRole(entity.RoleAdmin, entity.RoleITLead)
	reviewers := middleware.RequireRole(entity.RoleAdmin, entity.RoleDepartmentHead)

	rg.GET("/auth/me", h.Auth.Me)

	users := rg.Group("/users", admin)
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	org := rg.Group("/org")
	{
		for _, kind := range []entity.OrgKind{
			entity.OrgBusinessUnit, entity.OrgDivision, entity.OrgDepartment, entity.OrgFunction, entity.OrgApplication,
		} {
			org.GET("/"+string(kind), staff, h.Org.ListUnits(kind))
			org.POST("/"+string(kind), admin, h.Org.CreateUnit(kind))
		}
		org.DELETE("/:kind/:id", admin, h.Org.DeleteUnit)

		org.POST("/mappings/application-department", admin, h.Org.MapApplicationDepartment)
		org.DELETE("/mappings/application-department", admin, h.Org.UnmapApplicationDepartment)
		org.GET("/departments/:id/applications", staff, h.Org.ApplicationsByDepartment)

		org.POST("/mappings/function-application", admin, h.Org.MapFunctionApplication)
		org.DELETE("/mappings/function-application", admin, h.Org.UnmapFunctionApplication)
		org.GET("/functions/:id/applications", staff, h.Org.ApplicationsByFunction)
	}

	surveys := rg.Group("/surveys", staff)
	{
		surveys.GET("", h.Surveys.List)
		surveys.GET("/:id", h.Surveys.Get)
		surveys.POST("", admin, h.Surveys.Create)
		surveys.PUT("/:id", admin, h.Surveys.Update)
		surveys.DELETE("/:id", admin, h.Surveys.Delete)
		surveys.PATCH("/:id/status", admin, h.Surveys.SetStatus)

		surveys.POST("/:id/questions", admin, h.Surveys.AddQuestion)
		surveys.PUT("/:id/questions/order", admin, h.Surveys.ReorderQuestions)
		surveys.PUT("/:id/questions/:qid", admin, h.Surveys.UpdateQuestion)
		surveys.DELETE("/:id/questions/:qid", admin, h.Surveys.DeleteQuestion)
	}

	responses := rg.Group("/responses", staff)
	{
		responses.GET("", h.Responses.List)
		responses.GET("/:id", h.Responses.Get)
	}

	approvals := rg.Group("/approvals", staff)
	{
		approvals.POST("/propose", proposers, h.Approvals.Propose)
		approvals.POST("/approve", reviewers, h.Approvals.Approve)
		approvals.POST("/reject", reviewers, h.Approvals.Reject)
		approvals.POST("/cancel", proposers, h.Approvals.Cancel)
		approvals.POST("/bulk-approve", reviewers, h.Approvals.BulkApprove)
		approvals.GET("/pending", h.Approvals.Pending)
		approvals.GET("/history/:id", h.Approvals.History)
	}

	rg.GET("/audit-logs", admin, h.Audit.List)

	operations := rg.Group("/scheduled-operations", admin)
	{
		operations.GET("", h.Operations.List)
		operations.POST("", h.Operations.Create)
		operations.GET("/:id", h.Operations.Get)
		operations.POST("/:id/cancel", h.Operations.Cancel)
		operations.POST("/:id/run", h.Operations.RunNow)
	}

	reports := rg.Group("/reports", staff)
	{
		reports.GET("/surveys/:id/summary", h.Reports.Summary)
		reports.GET("/surveys/:id/export", h.Reports.Export)
	}

	uploads := rg.Group("/uploads", staff)
	{
		uploads.POST("", admin, h.Uploads.Upload)
		uploads.GET("/:id", h.Uploads.Download)
		uploads.DELETE("/:id", admin, h.Uploads.Delete)
	}
}
