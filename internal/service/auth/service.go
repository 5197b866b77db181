package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// tokenBytes длина токена в байтах до hex-кодирования
const tokenBytes = 32

// sweepInterval период удаления истекших токенов
const sweepInterval = 30 * time.Minute

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service сервис аутентификации администратора.
// Токены живут в памяти процесса: после рестарта все сессии сбрасываются.
type Service struct {
	login        string
	passwordHash string
	tokenTTL     time.Duration
	logger       Logger

	// now подменяется в тестах
	now func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time // токен → время выдачи

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(login, passwordHash string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		login:        login,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
		logger:       logger,
		now:          time.Now,
		tokens:       make(map[string]time.Time),
		stopCh:       make(chan struct{}),
	}
}

// Start запускает фоновую чистку истекших токенов
func (s *Service) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop останавливает фоновую чистку
func (s *Service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// Login проверяет учетные данные и выдает токен сессии
func (s *Service) Login(_ context.Context, login, password string) (string, error) {
	if login != s.login {
		s.logger.Warn("Service auth: Login - попытка входа с неизвестным логином")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn("Service auth: Login - неверный пароль для %s", login)
		return "", ErrInvalidCredentials
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: Login - генерация токена: %v", ErrInternal, err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = s.now()
	s.mu.Unlock()

	s.logger.Info("Service auth: администратор %s вошел в систему", login)
	return token, nil
}

// Validate проверяет токен сессии. Истекший токен удаляется.
func (s *Service) Validate(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.tokens[token]
	if !ok {
		return ErrInvalidToken
	}
	if s.now().Sub(issuedAt) > s.tokenTTL {
		delete(s.tokens, token)
		return ErrInvalidToken
	}
	return nil
}

// Logout отзывает токен сессии. Отзыв несуществующего токена не ошибка.
func (s *Service) Logout(_ context.Context, token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// sweep удаляет истекшие токены
func (s *Service) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, issuedAt := range s.tokens {
		if now.Sub(issuedAt) > s.tokenTTL {
			delete(s.tokens, token)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Service auth: удалено истекших токенов: %d", removed)
	}
}
