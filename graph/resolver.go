package graph

import (
	"errors"
	"strconv"

	"gql-storefront/constants"
	"gql-storefront/dto"
	"gql-storefront/middlewares"
	"gql-storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/go-viper/mapstructure/v2"
)

// ResolverFunc handles one named root field: it receives the transport
// context (for identity and cookies) and the coerced GraphQL arguments.
type ResolverFunc func(ctx *gin.Context, args map[string]interface{}) (interface{}, error)

// Resolver wires the root fields to the service layer.
type Resolver struct {
	authService services.IAuthService
	itemService services.IItemService
	cartService services.ICartService
}

func NewResolver(authService services.IAuthService, itemService services.IItemService, cartService services.ICartService) *Resolver {
	return &Resolver{
		authService: authService,
		itemService: itemService,
		cartService: cartService,
	}
}

// Mutations is the mutation-name → handler map the executor dispatches on.
func (r *Resolver) Mutations() map[string]ResolverFunc {
	return map[string]ResolverFunc{
		"createItem":        r.CreateItem,
		"updateItem":        r.UpdateItem,
		"deleteItem":        r.DeleteItem,
		"signup":            r.Signup,
		"signin":            r.Signin,
		"signout":           r.Signout,
		"requestReset":      r.RequestReset,
		"resetPassword":     r.ResetPassword,
		"updatePermissions": r.UpdatePermissions,
		"addToCart":         r.AddToCart,
		"removeFromCart":    r.RemoveFromCart,
	}
}

func (r *Resolver) Queries() map[string]ResolverFunc {
	return map[string]ResolverFunc{
		"me":    r.Me,
		"item":  r.Item,
		"items": r.Items,
	}
}

type SuccessMessage struct {
	Message string `json:"message"`
}

func (r *Resolver) CreateItem(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		return nil, services.ErrNotSignedIn
	}

	var input dto.CreateItemInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}
	return r.itemService.Create(input, userID)
}

func (r *Resolver) UpdateItem(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	var input dto.UpdateItemInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}
	return r.itemService.Update(input)
}

func (r *Resolver) DeleteItem(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.itemService.Delete(id)
}

func (r *Resolver) Signup(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	var input dto.SignupInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}

	user, token, err := r.authService.Signup(input)
	if err != nil {
		return nil, err
	}
	setTokenCookie(ctx, token)
	return user, nil
}

func (r *Resolver) Signin(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	var input dto.SigninInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}

	user, token, err := r.authService.Signin(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	setTokenCookie(ctx, token)
	return user, nil
}

func (r *Resolver) Signout(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	clearTokenCookie(ctx)
	return &SuccessMessage{Message: "Goodbye!"}, nil
}

func (r *Resolver) RequestReset(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	var input dto.RequestResetInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}

	if err := r.authService.RequestReset(input.Email); err != nil {
		return nil, err
	}
	return &SuccessMessage{Message: "Thanks! Check your email for a reset link."}, nil
}

func (r *Resolver) ResetPassword(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	var input dto.ResetPasswordInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}

	user, token, err := r.authService.ResetPassword(input)
	if err != nil {
		return nil, err
	}
	setTokenCookie(ctx, token)
	return user, nil
}

func (r *Resolver) UpdatePermissions(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		return nil, services.ErrNotSignedIn
	}

	var input dto.UpdatePermissionsInput
	if err := decodeArgs(args, &input); err != nil {
		return nil, err
	}
	return r.authService.UpdatePermissions(userID, input)
}

func (r *Resolver) AddToCart(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		return nil, services.ErrNotSignedIn
	}

	itemID, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.cartService.AddToCart(userID, itemID)
}

func (r *Resolver) RemoveFromCart(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		return nil, services.ErrNotSignedIn
	}

	cartItemID, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.cartService.RemoveFromCart(userID, cartItemID)
}

// Me returns null rather than erroring for anonymous callers, matching the
// nullable schema field.
func (r *Resolver) Me(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	user, err := r.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *Resolver) Item(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.itemService.FindByID(id)
}

func (r *Resolver) Items(ctx *gin.Context, args map[string]interface{}) (interface{}, error) {
	return r.itemService.FindAll()
}

func decodeArgs(args map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// idArg coerces an ID argument, which arrives as an int64 for literals or a
// string for JSON variables.
func idArg(args map[string]interface{}, name string) (uint, error) {
	switch v := args[name].(type) {
	case int64:
		return uint(v), nil
	case float64:
		return uint(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errors.New("invalid id")
		}
		return uint(id), nil
	default:
		return 0, errors.New("invalid id")
	}
}

func setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(constants.TokenCookieName, token, constants.TokenCookieMaxAge, "/", "", false, true)
}

func clearTokenCookie(ctx *gin.Context) {
	ctx.SetCookie(constants.TokenCookieName, "", -1, "/", "", false, true)
}
