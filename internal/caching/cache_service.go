package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"shiptrack/internal/models"
)

type CacheService interface {
	// Shipment caching keyed by tracking number
	GetShipment(ctx context.Context, trackingNumber string) (*models.Shipment, error)
	SetShipment(ctx context.Context, shipment *models.Shipment, ttl time.Duration) error
	DeleteShipment(ctx context.Context, trackingNumber string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses as well as plain host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func shipmentKey(trackingNumber string) string {
	return fmt.Sprintf("shiptrack:shipment:%s", trackingNumber)
}

func (r *redisCacheService) GetShipment(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	data, err := r.client.Get(ctx, shipmentKey(trackingNumber)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var shipment models.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *redisCacheService) SetShipment(ctx context.Context, shipment *models.Shipment, ttl time.Duration) error {
	data, err := json.Marshal(shipment)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, shipmentKey(shipment.TrackingNumber), data, ttl).Err()
}

func (r *redisCacheService) DeleteShipment(ctx context.Context, trackingNumber string) error {
	return r.client.Del(ctx, shipmentKey(trackingNumber)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
