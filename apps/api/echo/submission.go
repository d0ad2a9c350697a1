package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshims/kazi/core/assignment"
	"github.com/tshims/kazi/core/submission"
)

type submissionApi struct {
	svc      *submission.Service
	validate *validator.Validate
}

func registerSubmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *submission.Service, validate *validator.Validate) {
	api := submissionApi{
		svc:      svc,
		validate: validate,
	}

	g.POST("/assignments/:id/submit", api.submit, jwt, studentMiddleware())
	g.GET("/assignments/:id/submissions", api.listForAssignment, jwt, teacherMiddleware())
	g.GET("/my-submissions", api.listMine, jwt, studentMiddleware())
	g.POST("/submissions/:id/review", api.review, jwt, teacherMiddleware())
}

func (api *submissionApi) trapSvcErr(err error) error {
	switch errors.Cause(err) {
	case nil:
		return nil
	case assignment.ErrNotFound, submission.ErrNotFound:
		return errHttpNotFound
	case submission.ErrNotOpen, submission.ErrPastDue, submission.ErrDuplicate:
		return echo.NewHTTPError(http.StatusBadRequest, errors.Cause(err).Error())
	}
	return err
}

// Handlers

func (api *submissionApi) submit(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	student, err := contextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	s, err := api.svc.Submit(ctx.Param("id"), student, data)
	if err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *submissionApi) listForAssignment(ctx echo.Context) error {
	subs, err := api.svc.ListForAssignment(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "listing submissions for assignment")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) listMine(ctx echo.Context) error {
	student, err := contextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	subs, err := api.svc.ListMine(student.ID)
	if err != nil {
		return errors.Wrap(err, "listing own submissions")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) review(ctx echo.Context) error {
	s, err := api.svc.Review(ctx.Param("id"))
	if err != nil {
		return api.trapSvcErr(err)
	}
	return ctx.JSON(http.StatusOK, s)
}
