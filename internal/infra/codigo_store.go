package infra

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// codigoTTL bounds how long a verification code stays valid after the
// identity check approves a client.
const codigoTTL = 15 * time.Minute

var ErrCodigoNoEncontrado = errors.New("código de verificación no encontrado o expirado")

// CodigoStore keeps one-time verification codes in Redis, keyed by client
// document. Consumir uses GETDEL so a code can never be redeemed twice.
type CodigoStore struct {
	rdb *redis.Client
}

func NewCodigoStore(rdb *redis.Client) *CodigoStore {
	return &CodigoStore{rdb: rdb}
}

func (s *CodigoStore) Guardar(ctx context.Context, documento, codigo string) error {
	return s.rdb.Set(ctx, "codigo:"+documento, codigo, codigoTTL).Err()
}

func (s *CodigoStore) Consumir(ctx context.Context, documento string) (string, error) {
	codigo, err := s.rdb.GetDel(ctx, "codigo:"+documento).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodigoNoEncontrado
	}
	if err != nil {
		return "", err
	}
	return codigo, nil
}
