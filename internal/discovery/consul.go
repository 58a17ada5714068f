// Package discovery registers this instance with Consul when configured.
package discovery

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"

	"github.com/apiwat-s/screenscout-api/internal/config"
)

const serviceName = "screenscout-api"

// ConsulRegistrar holds the registration of one running instance.
type ConsulRegistrar struct {
	client    *api.Client
	serviceID string
	logger    *zerolog.Logger
}

// Register registers the HTTP service with the Consul agent at
// cfg.ConsulAddr, with an HTTP health check against /healthz. It returns nil
// without error when no Consul address is configured.
func Register(cfg *config.Config, logger *zerolog.Logger) (*ConsulRegistrar, error) {
	if cfg.ConsulAddr == "" {
		return nil, nil
	}

	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.ConsulAddr

	client, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, err
	}

	serviceID := fmt.Sprintf("%s-%s", serviceName, uuid.NewString())

	registration := &api.AgentServiceRegistration{
		ID:      serviceID,
		Name:    serviceName,
		Address: cfg.AdvertiseHost,
		Port:    cfg.Port,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/healthz", cfg.AdvertiseHost, cfg.Port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return nil, err
	}

	logger.Info().Str("service_id", serviceID).Msg("registered with consul")

	return &ConsulRegistrar{
		client:    client,
		serviceID: serviceID,
		logger:    logger,
	}, nil
}

// Deregister removes the instance from Consul. Safe to call on a nil
// registrar.
func (r *ConsulRegistrar) Deregister() {
	if r == nil {
		return
	}

	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Warn().Err(err).Msg("failed to deregister from consul")
		return
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered from consul")
}
