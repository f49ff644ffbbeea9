package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
)

const (
	LoginPath  = "/login"
	SignupPath = "/signup"
)

// WishlistService covers the signed-in side of the storefront: the session's
// current user and the templates they liked.
type WishlistService interface {
	SetSession(ctx context.Context, sessionID string, req *models.SessionRequest) (*models.User, error)
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
	CheckEmail(ctx context.Context, email string) (*models.AccountHint, error)
	Like(ctx context.Context, sessionID string, templateID models.ID) (*models.WishlistStatus, error)
	Status(ctx context.Context, sessionID string, templateID models.ID) (*models.WishlistStatus, error)
	List(ctx context.Context, sessionID string) ([]models.Template, error)
}

type wishlistService struct {
	store storage.Store
	api   AccountAPI
}

func NewWishlistService(store storage.Store, api AccountAPI) WishlistService {
	return &wishlistService{store: store, api: api}
}

func (s *wishlistService) SetSession(ctx context.Context, sessionID string, req *models.SessionRequest) (*models.User, error) {

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := s.store.Set(ctx, storage.Key(sessionID, storage.CurrentUserKey), req.User); err != nil {
		return nil, errors.StorageError("Failed to save session").WithError(err)
	}

	if req.Token != "" {
		if err := s.store.Set(ctx, storage.Key(sessionID, storage.AuthTokenKey), req.Token); err != nil {
			return nil, errors.StorageError("Failed to save session").WithError(err)
		}
	}

	middleware.LoggerFromContext(ctx).Info("Session user recorded", slog.String("userId", req.User.ID.String()))

	return &req.User, nil
}

// CurrentUser returns nil without an error when nobody is signed in.
func (s *wishlistService) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {

	var user models.User

	found, err := readBestEffort(ctx, s.store, storage.Key(sessionID, storage.CurrentUserKey), &user)
	if err != nil {
		return nil, errors.StorageError("Failed to load session").WithError(err)
	}

	if !found || user.ID == "" {
		return nil, nil
	}

	return &user, nil
}

func (s *wishlistService) CheckEmail(ctx context.Context, email string) (*models.AccountHint, error) {

	result, err := s.api.CheckEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, upstreamError(err, "Failed to check account")
	}

	hint := &models.AccountHint{Exists: result.Exists, Next: SignupPath}
	if result.Exists {
		hint.Next = LoginPath
	}

	return hint, nil
}

// Like records the template remotely first. The local copy is best effort
// and never reconciled with the server.
func (s *wishlistService) Like(ctx context.Context, sessionID string, templateID models.ID) (*models.WishlistStatus, error) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.UnauthorizedError("Sign in to add templates to your wishlist")
	}

	entry := models.WishlistEntry{UserID: user.ID, TemplateID: templateID}

	if err := s.api.AddToWishlist(ctx, entry); err != nil {
		return nil, upstreamError(err, "Failed to add to wishlist")
	}

	storeCtx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	var entries []models.WishlistEntry
	err = s.store.Update(storeCtx, storage.Key(sessionID, storage.WishlistKey), &entries, func(bool) error {
		if !models.IsWishlisted(entries, entry.UserID, entry.TemplateID) {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to record wishlist entry locally", slog.Any("error", err))
	}

	logger.Info("Template added to wishlist", slog.String("templateId", templateID.String()))

	return &models.WishlistStatus{TemplateID: templateID, Liked: true}, nil
}

func (s *wishlistService) Status(ctx context.Context, sessionID string, templateID models.ID) (*models.WishlistStatus, error) {

	status := &models.WishlistStatus{TemplateID: templateID}

	user, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return status, nil
	}

	var entries []models.WishlistEntry
	if _, err := readBestEffort(ctx, s.store, storage.Key(sessionID, storage.WishlistKey), &entries); err != nil {
		return nil, errors.StorageError("Failed to load wishlist").WithError(err)
	}

	status.Liked = models.IsWishlisted(entries, user.ID, templateID)

	return status, nil
}

func (s *wishlistService) List(ctx context.Context, sessionID string) ([]models.Template, error) {

	user, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.UnauthorizedError("Sign in to view your wishlist")
	}

	templates, err := s.api.ListWishlist(ctx, user.ID)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch wishlist")
	}

	if templates == nil {
		templates = []models.Template{}
	}

	return templates, nil
}
