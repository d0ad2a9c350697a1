package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/kazi/core/assignment"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/assignments", jwt)
	ag.GET("", api.list)
	ag.GET("/:id", api.retrieve)
	ag.POST("", api.create, teacherMiddleware())
	ag.PUT("/:id", api.update, teacherMiddleware())
	ag.POST("/:id/status", api.changeStatus, teacherMiddleware())
	ag.DELETE("/:id", api.destroy, teacherMiddleware())
}

// trapSvcErr maps registry errors to their HTTP counterparts; unmapped
// errors bubble up as server errors.
func (api *assignmentApi) trapSvcErr(err error) error {
	switch errors.Cause(err) {
	case nil:
		return nil
	case assignment.ErrNotFound:
		return errHttpNotFound
	case assignment.ErrNotEditable,
		assignment.ErrNotDeletable,
		assignment.ErrNotPublishable,
		assignment.ErrNotCompletable,
		assignment.ErrInvalidAction:
		return echo.NewHTTPError(http.StatusBadRequest, errors.Cause(err).Error())
	}
	return err
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	creator, err := contextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	a, err := api.svc.Create(data, creator)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) list(ctx echo.Context) error {
	filter := new(assignment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.Assignment{})
	}

	assignments, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "listing assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) changeStatus(ctx echo.Context) error {
	var data assignment.ChangeStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangeStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.ChangeStatus(ctx.Param("id"), data.Action)
	if err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "assignment deleted"})
}
