package accounts

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// TokenHeader is the request and response header carrying the session token
const TokenHeader = "token"

type AccountsControllerRoutes struct {
	Users  string
	Login  string
	Logout string
}

// AccountsController maps the wire surface onto the session and lifecycle
// managers. It holds no state of its own beyond its collaborators.
type AccountsController struct {
	Debug   bool
	Logger  Logger
	Auther  Authenticator
	Manager AccountManager
	Routes  *AccountsControllerRoutes
}

type AccountsControllerOption func(*AccountsController) *AccountsController

func NewAccountsController(opts ...AccountsControllerOption) *AccountsController {
	c := &AccountsController{
		Logger: defLogger{},
		Routes: &AccountsControllerRoutes{
			Users:  "/users",
			Login:  "/login",
			Logout: "/logout",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in accounts controller...")
	}

	if c.Manager == nil {
		panic("Missing AccountManager in accounts controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Logger = logger
		return c
	}
}

func WithAuthenticator(auther Authenticator) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Auther = auther
		return c
	}
}

func WithAccountManager(manager AccountManager) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Manager = manager
		return c
	}
}

func WithControllerDebug(debug bool) AccountsControllerOption {
	return func(c *AccountsController) *AccountsController {
		c.Debug = debug
		return c
	}
}

func RegisterAccountRoutes[T any](app router.Router[T], opts ...AccountsControllerOption) {
	controller := NewAccountsController(opts...)
	requireToken := controller.RequireToken()

	app.Get(controller.Routes.Users, controller.AccountsList, requireToken).
		SetName("users.list")

	app.Get(fmt.Sprintf("%s/:id", controller.Routes.Users), controller.AccountShow, requireToken).
		SetName("users.show")

	app.Post(controller.Routes.Users, controller.AccountCreate).
		SetName("users.create")

	app.Put(fmt.Sprintf("%s/:id", controller.Routes.Users), controller.AccountUpdate, requireToken).
		SetName("users.update")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Post(controller.Routes.Logout, controller.LogoutPost, requireToken).
		SetName("sign-out.post")
}

// RequireToken gates a route on Authorize: the token header must match an
// account's current token exactly.
func (a *AccountsController) RequireToken() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			token := ctx.GetString(TokenHeader, "")
			if err := a.Auther.Authorize(ctx.Context(), token); err != nil {
				return a.handleError(ctx, err)
			}
			return next(ctx)
		}
	}
}

// RegisterRequest payload
type RegisterRequest struct {
	Username    string  `form:"username" json:"username"`
	DisplayName string  `form:"display_name" json:"display_name"`
	Password    string  `form:"password" json:"password"`
	BirthDate   *string `form:"birth_date" json:"birth_date"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.DisplayName,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// UpdateRequest payload
type UpdateRequest struct {
	Username  string  `form:"username" json:"username"`
	BirthDate *string `form:"birth_date" json:"birth_date"`
}

func (a *AccountsController) AccountsList(ctx router.Context) error {
	summaries, err := a.Manager.Accounts(ctx.Context())
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, summaries)
}

func (a *AccountsController) AccountShow(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return a.handleError(ctx, ErrInvalidAccountID)
	}

	summary, err := a.Manager.Account(ctx.Context(), id)
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, summary)
}

func (a *AccountsController) AccountCreate(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.handleError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse registration payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.handleError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, err.Error()).
			WithCode(goerrors.CodeBadRequest))
	}

	if a.Debug {
		a.Logger.Debug("account create", "payload", print.MaybePrettyJSON(payload))
	}

	msg, err := registerMessageFromRequest(payload)
	if err != nil {
		return a.handleError(ctx, err)
	}

	summary, token, err := a.Manager.Register(ctx.Context(), msg)
	if err != nil {
		return a.handleError(ctx, err)
	}

	ctx.SetHeader(TokenHeader, token)

	return ctx.JSON(router.StatusCreated, summary)
}

func (a *AccountsController) AccountUpdate(ctx router.Context) error {
	payload := new(UpdateRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.handleError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse update payload").
			WithCode(goerrors.CodeBadRequest))
	}

	msg, err := updateMessageFromRequest(payload)
	if err != nil {
		return a.handleError(ctx, err)
	}

	token := ctx.GetString(TokenHeader, "")
	if err := a.Manager.Update(ctx.Context(), token, msg); err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func (a *AccountsController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.handleError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.handleError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, err.Error()).
			WithCode(goerrors.CodeBadRequest))
	}

	summary, token, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.handleError(ctx, err)
	}

	ctx.SetHeader(TokenHeader, token)

	return ctx.JSON(router.StatusOK, summary)
}

func (a *AccountsController) LogoutPost(ctx router.Context) error {
	token := ctx.GetString(TokenHeader, "")

	summary, err := a.Auther.Logout(ctx.Context(), token)
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, summary)
}

func (a *AccountsController) handleError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	// wrapped errors that never picked up a code must not surface as status 0
	status := richErr.Code
	if status == 0 {
		status = goerrors.CodeInternal
	}

	a.Logger.Info(
		"accounts controller error",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
	)

	return ctx.JSON(status, map[string]any{
		"error": richErr.Message,
	})
}
