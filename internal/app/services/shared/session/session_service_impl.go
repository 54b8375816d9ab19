package session

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	onceSessionService.Do(func() {
		sessionServiceInstance = &sessionService{
			RedisRepository: redisRepository,
		}
	})
	return sessionServiceInstance
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionID)
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	return sessionData, nil
}
