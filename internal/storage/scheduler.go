package storage

import (
	"luckypick/internal/providers"
	"luckypick/internal/services"
	"luckypick/internal/storage/interfaces"
	"luckypick/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const defaultFlushInterval = 30

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.LotteryServiceInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

// Init starts the periodic flush of keys whose write-through failed.
func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Storage.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	s.cron.AddFunc(gron.Every(interval*time.Second), s.flush)
	s.cron.Start()
}

func (s *Scheduler) flush() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if s.service.Pending() == 0 {
		return
	}
	if err := s.service.Flush(); err != nil {
		s.logger.Errorf(providers.TypeStorage, "Error while flushing pending keys: %s", err)
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStorage, "Persisting state to %s...", s.config.Storage.Dir)
	err := s.service.PersistAll()
	if err != nil {
		s.logger.Errorf(providers.TypeStorage, "Error while persisting state: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.LotteryServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
