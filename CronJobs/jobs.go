package CronJobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"PAM/Models"
)

// SalesReconciler periodically repairs customers whose embedded sales list
// drifted from the authoritative Sale table (possible when the second write
// of a sale failed mid-way).
type SalesReconciler struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	runImmediately bool
	jobID          cron.EntryID
}

// NewSalesReconciler creates a reconciler over the given database handle
func NewSalesReconciler(db *gorm.DB, runImmediately bool) *SalesReconciler {
	return &SalesReconciler{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly reconciliation run
func (s *SalesReconciler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 2 * * *", func() {
		log.Println("Running scheduled sales reconciliation")
		s.runReconcile()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Sales reconciliation scheduler started - will run daily at 2:00 AM")

	if s.runImmediately {
		log.Println("Running initial sales reconciliation")
		s.runReconcile()
	}
	return nil
}

// Stop terminates the reconciler
func (s *SalesReconciler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Sales reconciliation scheduler stopped")
	}
}

func (s *SalesReconciler) runReconcile() {
	rebuilt, err := Models.RebuildAllCustomerSales(s.db)
	if err != nil {
		log.Println("Sales reconciliation failed:", err)
		return
	}
	if rebuilt > 0 {
		log.Printf("Sales reconciliation rebuilt %d customer(s)", rebuilt)
	}
}
