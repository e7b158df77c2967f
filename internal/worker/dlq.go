package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// dlqEntry preserves everything needed to replay a job by hand: the original
// queue, the raw payload and why each attempt failed.
type dlqEntry struct {
	Cola      string          `json:"cola"`
	Tipo      string          `json:"tipo"`
	Payload   json.RawMessage `json:"payload"`
	Motivo    string          `json:"motivo"`
	FallidoEn time.Time       `json:"fallido_en"`
	Intentos  int             `json:"intentos"`
}

// sendToDLQ parks a job that exhausted its retries under dlq:{cola}. Errors
// here are logged and swallowed: losing the DLQ entry must not crash a worker.
func (p *Pool) sendToDLQ(ctx context.Context, cola, tipo string, payload json.RawMessage, motivo string, intentos int) {
	entry := dlqEntry{
		Cola:      cola,
		Tipo:      tipo,
		Payload:   payload,
		Motivo:    motivo,
		FallidoEn: time.Now().UTC(),
		Intentos:  intentos,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: no se pudo serializar la entrada")
		return
	}
	if err := p.rdb.LPush(ctx, dlqPrefix+cola, data).Err(); err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: no se pudo encolar")
		return
	}
	log.Warn().
		Str("cola", cola).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("dlq: trabajo descartado tras agotar reintentos")
}

// DLQDepths reports the number of parked jobs per queue, for the health
// endpoint and external monitoring.
func DLQDepths(ctx context.Context, rdb *redis.Client) map[string]int64 {
	depths := make(map[string]int64, 2)
	for _, cola := range []string{QueueLiquidacion, QueueEmail} {
		n, err := rdb.LLen(ctx, dlqPrefix+cola).Result()
		if err != nil {
			continue
		}
		depths[cola] = n
	}
	return depths
}
