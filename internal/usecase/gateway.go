package usecase

import (
	"context"
	"math/rand"
	"time"

	"arena-hub/pkg/utils"
)

// simulateGateway meniru round-trip ke payment gateway: delay sesuai config,
// lalu gagal dengan probabilitas FailurePercent. Dipakai booking payment dan
// konfirmasi registrasi event. Ctx cancel memotong delay.
func simulateGateway(ctx context.Context, cfg utils.PaymentConfig) error {
	if cfg.LatencyMs > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(cfg.LatencyMs) * time.Millisecond):
		}
	}

	if cfg.FailurePercent > 0 && rand.Intn(100) < cfg.FailurePercent {
		return ErrPaymentDeclined
	}

	return nil
}
