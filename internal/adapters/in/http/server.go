package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/generated/servers"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports the server depends on. The concrete command and query
// handlers satisfy them.
type (
	OrderPlacer interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
	}

	StatusTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error)
	}

	RiderAssigner interface {
		Handle(ctx context.Context, cmd commands.AutoAssignRiderCommand) (commands.AssignmentResult, error)
	}

	BacklogDrainer interface {
		Handle(ctx context.Context, cmd commands.DrainBacklogCommand) ([]commands.AssignmentResult, error)
	}

	NotificationMarker interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error)
		HandleAll(ctx context.Context, cmd commands.MarkAllNotificationsReadCommand) (int64, error)
	}

	OrderTracker interface {
		Handle(ctx context.Context, query queries.TrackOrderQuery) (*queries.TrackOrderQueryResponse, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error)
	}

	RiderStatsReader interface {
		Handle(ctx context.Context, query queries.GetRiderStatsQuery) (*queries.GetRiderStatsQueryResponse, error)
	}

	NotificationLister interface {
		Handle(ctx context.Context, query queries.ListNotificationsQuery) (*queries.ListNotificationsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder        OrderPlacer
	TransitionStatus  StatusTransitioner
	AssignRider       RiderAssigner
	DrainBacklog      BacklogDrainer
	MarkNotifications NotificationMarker

	TrackOrder        OrderTracker
	ListOrders        OrderLister
	RiderStats        RiderStatsReader
	ListNotifications NotificationLister

	Notifications NotificationSubscriber
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// PlaceOrder handles POST /api/v1/orders - converts the caller's cart into an order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, err := requireRole(ctx, order.RoleCustomer)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeMessage(ctx, http.StatusBadRequest, "Invalid request body")
	}
	addressID, err := kernel.UUIDFromGoogle(body.AddressId)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(actor.ID(), addressID)
	if err != nil {
		return writeError(ctx, err)
	}
	placed, err := s.h.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(placed))
}

// ListOrders handles GET /api/v1/orders - lists the orders visible to the caller.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var restaurantID *kernel.UUID
	if params.RestaurantId != nil {
		id, err := kernel.UUIDFromGoogle(*params.RestaurantId)
		if err != nil {
			return writeError(ctx, err)
		}
		restaurantID = &id
	}

	var statuses []order.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := order.ParseStatus(string(raw))
			if err != nil {
				return writeError(ctx, err)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(actor, restaurantID, statuses, deref(params.Limit), deref(params.Offset))
	if err != nil {
		return writeError(ctx, err)
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.TransitionOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeMessage(ctx, http.StatusBadRequest, "Invalid request body")
	}
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return writeError(ctx, err)
	}
	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(id, actor, target, deref(body.Reason))
	if err != nil {
		return writeError(ctx, err)
	}
	updated, err := s.h.TransitionStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// TrackOrder handles GET /api/v1/orders/{orderId}/track.
func (s *Server) TrackOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	tracked, err := s.track(ctx.Request().Context(), orderId, actor)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTrackedOrder(tracked))
}

// AssignRider handles POST /api/v1/orders/{orderId}/assign - a manual retry of
// the automatic assignment, available to the owning restaurant.
func (s *Server) AssignRider(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := requireRole(ctx, order.RoleRestaurantOwner)
	if err != nil {
		return writeError(ctx, err)
	}

	// Tracking refuses callers that are not a party of the order.
	tracked, err := s.track(ctx.Request().Context(), orderId, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAutoAssignRiderCommand(tracked.ID)
	if err != nil {
		return writeError(ctx, err)
	}
	result, err := s.h.AssignRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAssignmentResult(result))
}

// DrainBacklog handles POST /api/v1/dispatch/drain - a rider coming online
// pulls waiting orders into the pool.
func (s *Server) DrainBacklog(ctx echo.Context) error {
	if _, err := requireRole(ctx, order.RoleRider); err != nil {
		return writeError(ctx, err)
	}

	var body servers.DrainBacklogJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeMessage(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewDrainBacklogCommand(body.MaxAssignments)
	if err != nil {
		return writeError(ctx, err)
	}
	results, err := s.h.DrainBacklog.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.AssignmentResult, len(results))
	for i, r := range results {
		response[i] = toAssignmentResult(r)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRiderStats handles GET /api/v1/riders/{riderId}/stats.
func (s *Server) GetRiderStats(ctx echo.Context, riderId openapi_types.UUID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := kernel.UUIDFromGoogle(riderId)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRiderStatsQuery(id, actor)
	if err != nil {
		return writeError(ctx, err)
	}
	stats, err := s.h.RiderStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRiderStats(stats))
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context, params servers.ListNotificationsParams) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListNotificationsQuery(actor.ID(), deref(params.UnreadOnly), deref(params.Limit))
	if err != nil {
		return writeError(ctx, err)
	}
	page, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toNotificationPage(page))
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := kernel.UUIDFromGoogle(notificationId)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(id, actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}
	n, err := s.h.MarkNotifications.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toNotification(n))
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkAllNotificationsReadCommand(actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}
	updated, err := s.h.MarkNotifications.HandleAll(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.ReadAllResult{Updated: updated})
}

func (s *Server) track(ctx context.Context, orderID openapi_types.UUID, actor order.Actor) (*queries.TrackOrderQueryResponse, error) {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return nil, err
	}
	query, err := queries.NewTrackOrderQuery(id, actor)
	if err != nil {
		return nil, err
	}
	return s.h.TrackOrder.Handle(ctx, query)
}

func requireActor(ctx echo.Context) (order.Actor, error) {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return order.Actor{}, errs.NewForbiddenError("call the API without an identity")
	}
	return actor, nil
}

func requireRole(ctx echo.Context, role order.Role) (order.Actor, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return order.Actor{}, err
	}
	if actor.Role() != role {
		return order.Actor{}, errs.NewForbiddenError("call this endpoint as " + actor.Role().String())
	}
	return actor, nil
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
