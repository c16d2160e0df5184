// services/closing.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

// ClosingService generates one WeeklyClosing per barber per calendar week
// and, when Twilio is configured, messages each barber their settlement.
type ClosingService struct {
	db         *gorm.DB
	aggregator *Aggregator
	loc        *time.Location
	clock      utils.Clock
	client     *twilio.RestClient
	notify     bool
}

type ClosingSummary struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
	Closings  int       `json:"closings"`
}

func NewClosingService(db *gorm.DB, aggregator *Aggregator, loc *time.Location, clock utils.Clock) *ClosingService {
	s := &ClosingService{
		db:         db,
		aggregator: aggregator,
		loc:        loc,
		clock:      clock,
	}

	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
		s.notify = true
	}

	return s
}

// StartScheduler closes the finishing week every Sunday at 23:59 local time.
func (s *ClosingService) StartScheduler() {
	c := cron.New(cron.WithLocation(s.loc))

	c.AddFunc("59 23 * * 0", func() {
		if _, err := s.GenerateForWeek(s.clock.Now()); err != nil {
			log.Printf("Weekly closing job failed: %v", err)
		}
	})

	c.Start()
	log.Println("Weekly closing scheduler started")
}

// GenerateForWeek settles the Monday–Sunday week containing ref. Re-running
// the same week upserts on (barberId, weekStart): totals are refreshed,
// nothing is duplicated, and an already-PAID status survives the rerun.
// Concurrent invocations for the same week converge on the same rows.
func (s *ClosingService) GenerateForWeek(ref time.Time) (ClosingSummary, error) {
	weekStart, weekNext := utils.WeekRange(ref, s.loc)
	weekEnd := weekNext.Add(-time.Second) // Sunday 23:59:59, for display

	summary := ClosingSummary{WeekStart: weekStart, WeekEnd: weekEnd}

	perBarber, err := s.aggregator.PerBarber(weekStart, weekNext)
	if err != nil {
		return summary, fmt.Errorf("aggregate week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	if len(perBarber) == 0 {
		log.Printf("No payments to close for week starting %s", weekStart.Format("2006-01-02"))
		return summary, nil
	}

	for _, bt := range perBarber {
		closing := models.WeeklyClosing{
			WeekStart:     weekStart,
			WeekEnd:       weekEnd,
			BarberID:      bt.BarberID,
			TotalServices: bt.TotalServices,
			TotalRevenue:  bt.ShopRevenue,
			TotalTips:     bt.Tips,
			Commission:    bt.Earnings,
			Status:        models.ClosingPending,
		}

		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"week_end", "total_services", "total_revenue", "total_tips", "commission", "updated_at",
			}),
		}).Create(&closing).Error
		if err != nil {
			return summary, fmt.Errorf("persist closing for barber %s: %w", bt.BarberID, err)
		}

		summary.Closings++
		s.notifyBarber(bt, weekStart, weekEnd)
	}

	log.Printf("Weekly closing completed: %d closings for week %s", summary.Closings, weekStart.Format("2006-01-02"))
	return summary, nil
}

func (s *ClosingService) notifyBarber(bt BarberTotals, weekStart, weekEnd time.Time) {
	if !s.notify {
		return
	}

	var barber models.User
	if err := s.db.First(&barber, "id = ?", bt.BarberID).Error; err != nil || barber.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Cierre semanal %s - %s: %d servicios, $%.2f a cobrar (comision + propinas)",
		weekStart.Format("02/01"), weekEnd.Format("02/01"),
		bt.TotalServices, bt.Earnings,
	)

	// WhatsApp if the phone is in E.164 format, plain SMS otherwise
	to := barber.Phone
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if strings.HasPrefix(barber.Phone, "+") {
		to = "whatsapp:" + barber.Phone
		from = "whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to notify barber %s: %v", barber.Name, err)
	} else if resp.Sid != nil {
		log.Printf("Settlement sent to %s, SID: %s", barber.Name, *resp.Sid)
	}
}
