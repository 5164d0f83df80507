package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the API on g (normally /api)
func RegisterRoutes(g *echo.Group) {
	g.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	clients := g.Group("/clients")
	{
		clients.GET("", GetClientsHandler)
		clients.POST("", CreateClientHandler)
		clients.POST("/import", ImportClientsHandler)
		clients.GET("/:id", GetClientHandler)
		clients.PUT("/:id", UpdateClientHandler)
		clients.DELETE("/:id", DeleteClientHandler)
		clients.GET("/:id/cases", GetClientCasesHandler)
		clients.GET("/:id/tags", GetClientTagsHandler)
		clients.POST("/:id/tags", AssignClientTagHandler)
		clients.DELETE("/:id/tags/:tagId", RemoveClientTagHandler)
	}

	cases := g.Group("/cases")
	{
		cases.POST("", CreateCaseHandler)
		cases.GET("/:id", GetCaseHandler)
		cases.PUT("/:id", UpdateCaseHandler)
		cases.DELETE("/:id", DeleteCaseHandler)
		cases.PUT("/:id/folder", UpdateCaseFolderHandler)
		cases.POST("/:id/touch", TouchCaseHandler)
		cases.GET("/:id/activities", GetCaseActivitiesHandler)
		cases.GET("/:id/parties", GetCasePartiesHandler)
		cases.GET("/:id/hearings", GetCaseHearingsHandler)
		cases.GET("/:id/tasks", GetCaseTasksHandler)
		cases.GET("/:id/tags", GetCaseTagsHandler)
		cases.POST("/:id/tags", AssignCaseTagHandler)
		cases.DELETE("/:id/tags/:tagId", RemoveCaseTagHandler)
		cases.GET("/:id/report", GetCaseReportHandler)
		cases.GET("/:id/report.pdf", GetCaseReportPDFHandler)
	}

	activities := g.Group("/activities")
	{
		activities.POST("", CreateActivityHandler)
		activities.GET("/:id", GetActivityHandler)
		activities.PUT("/:id", UpdateActivityHandler)
		activities.DELETE("/:id", DeleteActivityHandler)
	}

	parties := g.Group("/parties")
	{
		parties.POST("", CreatePartyHandler)
		parties.GET("/:id", GetPartyHandler)
		parties.PUT("/:id", UpdatePartyHandler)
		parties.DELETE("/:id", DeletePartyHandler)
	}

	hearings := g.Group("/hearings")
	{
		hearings.GET("", GetHearingsHandler)
		hearings.GET("/dates", GetHearingDatesHandler)
		hearings.POST("", CreateHearingHandler)
		hearings.GET("/:id", GetHearingHandler)
		hearings.PUT("/:id", UpdateHearingHandler)
		hearings.DELETE("/:id", DeleteHearingHandler)
	}

	tasks := g.Group("/tasks")
	{
		tasks.GET("", GetTasksHandler)
		tasks.POST("", CreateTaskHandler)
		tasks.GET("/:id", GetTaskHandler)
		tasks.PUT("/:id", UpdateTaskHandler)
		tasks.DELETE("/:id", DeleteTaskHandler)
	}

	tags := g.Group("/tags")
	{
		tags.GET("", GetTagsHandler)
		tags.POST("", CreateTagHandler)
		tags.GET("/:id", GetTagHandler)
		tags.DELETE("/:id", DeleteTagHandler)
	}

	g.GET("/search", SearchHandler)
	g.GET("/profile", GetProfileHandler)
	g.PUT("/profile", UpdateProfileHandler)
	g.GET("/reminders", GetRemindersHandler)
	g.GET("/export", ExportHandler)
	g.GET("/backups", GetBackupsHandler)
	g.POST("/backups", CreateBackupHandler)
}

// MountAPI installs mw on e and registers the routes under /api. The
// middleware goes on the echo instance rather than the group: a group with
// middleware gets catch-all routes, which would turn 405 answers into 404.
func MountAPI(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.Use(mw...)
	RegisterRoutes(e.Group("/api"))
}

// NewServer builds the echo instance with the JSON error handler and the
// validator installed; callers add middleware and routes
func NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = jsonErrorHandler
	return e
}

// jsonErrorHandler renders framework errors (unknown route, bad method,
// panics recovered by middleware) in the same shape as handler errors
func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "error interno"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: msg})
}
