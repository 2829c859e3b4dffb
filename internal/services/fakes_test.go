package services

import (
	"context"
	"sync"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes mirroring the conditional-update contract
// of the MongoDB implementations: status-guarded transitions report how
// many documents actually moved.

type fakeOrganizerRepo struct {
	organizers map[primitive.ObjectID]*models.Organizer
}

func newFakeOrganizerRepo() *fakeOrganizerRepo {
	return &fakeOrganizerRepo{organizers: make(map[primitive.ObjectID]*models.Organizer)}
}

func (r *fakeOrganizerRepo) Create(ctx context.Context, organizer *models.Organizer) error {
	if organizer.ID.IsZero() {
		organizer.ID = primitive.NewObjectID()
	}
	organizer.CreatedAt = time.Now()
	r.organizers[organizer.ID] = organizer
	return nil
}

func (r *fakeOrganizerRepo) FindByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	for _, o := range r.organizers {
		if o.Email == email {
			return o, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeOrganizerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error) {
	o, ok := r.organizers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return o, nil
}

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[primitive.ObjectID]*models.Campaign)}
}

func (r *fakeCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	campaign.CreatedAt = time.Now()
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCampaignRepo) FindBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	for _, c := range r.campaigns {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCampaignRepo) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range r.campaigns {
		if c.OwnerID == ownerID && c.Status != models.CampaignStatusDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.CampaignStatus, to models.CampaignStatus) (bool, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if c.Status == f {
			c.Status = to
			if to == models.CampaignStatusActive && c.ActivatedAt.IsZero() {
				c.ActivatedAt = time.Now()
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCampaignRepo) IncrementTotalRaised(ctx context.Context, id primitive.ObjectID, amount float64) error {
	c, ok := r.campaigns[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.TotalRaised += amount
	return nil
}

func (r *fakeCampaignRepo) MarkDrawn(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.UpdateStatus(ctx, id,
		[]models.CampaignStatus{models.CampaignStatusActive, models.CampaignStatusPaused, models.CampaignStatusClosed},
		models.CampaignStatusDrawn)
}

type fakeTicketRepo struct {
	tickets []*models.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{}
}

func (r *fakeTicketRepo) CreateMany(ctx context.Context, tickets []*models.Ticket) error {
	for _, t := range tickets {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.tickets = append(r.tickets, t)
	}
	return nil
}

func (r *fakeTicketRepo) Reserve(ctx context.Context, campaignID primitive.ObjectID, numbers []int, buyerID, transactionID primitive.ObjectID, now time.Time) (int64, error) {
	wanted := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}
	var count int64
	for _, t := range r.tickets {
		if t.CampaignID == campaignID && wanted[t.Number] && t.Status == models.TicketStatusAvailable {
			t.Status = models.TicketStatusReserved
			t.BuyerID = buyerID
			t.TransactionID = transactionID
			t.ReservedAt = now
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) Release(ctx context.Context, campaignID, transactionID primitive.ObjectID) (int64, error) {
	var count int64
	for _, t := range r.tickets {
		if t.CampaignID == campaignID && t.TransactionID == transactionID && t.Status == models.TicketStatusReserved {
			t.Status = models.TicketStatusAvailable
			t.BuyerID = primitive.NilObjectID
			t.TransactionID = primitive.NilObjectID
			t.ReservedAt = time.Time{}
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) MarkPaid(ctx context.Context, campaignID, transactionID primitive.ObjectID, now time.Time) (int64, error) {
	var count int64
	for _, t := range r.tickets {
		if t.CampaignID == campaignID && t.TransactionID == transactionID && t.Status == models.TicketStatusReserved {
			t.Status = models.TicketStatusPaid
			t.PaidAt = now
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.filter(campaignID, ""), nil
}

func (r *fakeTicketRepo) FindPaidByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.filter(campaignID, models.TicketStatusPaid), nil
}

func (r *fakeTicketRepo) CountByStatus(ctx context.Context, campaignID primitive.ObjectID, status models.TicketStatus) (int64, error) {
	return int64(len(r.filter(campaignID, status))), nil
}

func (r *fakeTicketRepo) filter(campaignID primitive.ObjectID, status models.TicketStatus) []*models.Ticket {
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.CampaignID == campaignID && (status == "" || t.Status == status) {
			out = append(out, t)
		}
	}
	// tickets are created in number order, which keeps this sorted
	return out
}

func (r *fakeTicketRepo) byNumber(campaignID primitive.ObjectID, number int) *models.Ticket {
	for _, t := range r.tickets {
		if t.CampaignID == campaignID && t.Number == number {
			return t
		}
	}
	return nil
}

type fakeBuyerRepo struct {
	buyers map[primitive.ObjectID]*models.Buyer
}

func newFakeBuyerRepo() *fakeBuyerRepo {
	return &fakeBuyerRepo{buyers: make(map[primitive.ObjectID]*models.Buyer)}
}

func (r *fakeBuyerRepo) FindOrCreate(ctx context.Context, buyer *models.Buyer) (*models.Buyer, error) {
	for _, b := range r.buyers {
		if b.CampaignID == buyer.CampaignID && b.Whatsapp == buyer.Whatsapp {
			b.Name = buyer.Name
			if buyer.Email != "" {
				b.Email = buyer.Email
			}
			return b, nil
		}
	}
	buyer.ID = primitive.NewObjectID()
	buyer.CreatedAt = time.Now()
	r.buyers[buyer.ID] = buyer
	return buyer, nil
}

func (r *fakeBuyerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	b, ok := r.buyers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

type fakeTransactionRepo struct {
	transactions map[primitive.ObjectID]*models.Transaction
	createErr    error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[primitive.ObjectID]*models.Transaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	transaction.CreatedAt = time.Now()
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTransactionRepo) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range r.transactions {
		if t.CampaignID == campaignID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindExpiredPending(ctx context.Context, now time.Time) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range r.transactions {
		if t.Status == models.TransactionStatusPending && t.ExpiresAt.Before(now) {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) MarkPaid(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	t, ok := r.transactions[id]
	if !ok || t.Status != models.TransactionStatusPending {
		return false, nil
	}
	t.Status = models.TransactionStatusPaid
	t.PaidAt = now
	return true, nil
}

func (r *fakeTransactionRepo) MarkCancelled(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	t, ok := r.transactions[id]
	if !ok || t.Status != models.TransactionStatusPending {
		return false, nil
	}
	t.Status = models.TransactionStatusCancelled
	t.CancelledAt = now
	return true, nil
}

func (r *fakeTransactionRepo) SetPaymentArtifacts(ctx context.Context, id primitive.ObjectID, paymentID, qrCode, qrCodeCopy string) error {
	t, ok := r.transactions[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	t.PaymentID = paymentID
	t.QRCode = qrCode
	t.QRCodeCopy = qrCodeCopy
	return nil
}

func (r *fakeTransactionRepo) CountPendingByBuyer(ctx context.Context, campaignID, buyerID primitive.ObjectID) (int64, error) {
	var count int64
	for _, t := range r.transactions {
		if t.CampaignID == campaignID && t.BuyerID == buyerID && t.Status == models.TransactionStatusPending {
			count++
		}
	}
	return count, nil
}

type fakePrizeRepo struct {
	prizes map[primitive.ObjectID]*models.Prize
}

func newFakePrizeRepo() *fakePrizeRepo {
	return &fakePrizeRepo{prizes: make(map[primitive.ObjectID]*models.Prize)}
}

func (r *fakePrizeRepo) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	for _, p := range prizes {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.prizes[p.ID] = p
	}
	return nil
}

func (r *fakePrizeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	p, ok := r.prizes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (r *fakePrizeRepo) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error) {
	var out []*models.Prize
	for _, p := range r.prizes {
		if p.CampaignID == campaignID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePrizeRepo) CountUndrawn(ctx context.Context, campaignID primitive.ObjectID) (int64, error) {
	var count int64
	for _, p := range r.prizes {
		if p.CampaignID == campaignID && p.WinnerID.IsZero() {
			count++
		}
	}
	return count, nil
}

func (r *fakePrizeRepo) SetWinner(ctx context.Context, prizeID, buyerID primitive.ObjectID, winnerNumber int, winnerName string, now time.Time) (bool, error) {
	p, ok := r.prizes[prizeID]
	if !ok || !p.WinnerID.IsZero() {
		return false, nil
	}
	p.WinnerID = buyerID
	p.WinnerNumber = &winnerNumber
	p.WinnerName = winnerName
	p.DrawnAt = now
	return true, nil
}

type fakeDrawAuditRepo struct {
	audits []*models.DrawAudit
}

func newFakeDrawAuditRepo() *fakeDrawAuditRepo {
	return &fakeDrawAuditRepo{}
}

func (r *fakeDrawAuditRepo) Create(ctx context.Context, audit *models.DrawAudit) error {
	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	r.audits = append(r.audits, audit)
	return nil
}

func (r *fakeDrawAuditRepo) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.DrawAudit, error) {
	var out []*models.DrawAudit
	for _, a := range r.audits {
		if a.CampaignID == campaignID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.CampaignID == campaignID {
			out = append(out, n)
		}
	}
	return out, nil
}

// nopNotifier swallows notifications. Services fire them on goroutines,
// so tests assert notification content through NotificationServiceImpl
// directly instead.
type nopNotifier struct{}

func (nopNotifier) SendReservationCreated(context.Context, *models.Campaign, *models.Buyer, *models.Transaction) {
}
func (nopNotifier) SendPaymentConfirmed(context.Context, *models.Campaign, *models.Buyer, *models.Transaction) {
}
func (nopNotifier) SendWinnerAnnouncement(context.Context, *models.Campaign, *models.Buyer, *models.Prize, int) {
}

// fixture wires the fakes around one active campaign with a generated
// ticket pool, the common starting point of the engine tests.
type fixture struct {
	organizerRepo   *fakeOrganizerRepo
	campaignRepo    *fakeCampaignRepo
	ticketRepo      *fakeTicketRepo
	buyerRepo       *fakeBuyerRepo
	transactionRepo *fakeTransactionRepo
	prizeRepo       *fakePrizeRepo
	drawAuditRepo   *fakeDrawAuditRepo

	ownerID  primitive.ObjectID
	campaign *models.Campaign
	prize    *models.Prize
}

func newFixture(totalNumbers int) *fixture {
	f := &fixture{
		organizerRepo:   newFakeOrganizerRepo(),
		campaignRepo:    newFakeCampaignRepo(),
		ticketRepo:      newFakeTicketRepo(),
		buyerRepo:       newFakeBuyerRepo(),
		transactionRepo: newFakeTransactionRepo(),
		prizeRepo:       newFakePrizeRepo(),
		drawAuditRepo:   newFakeDrawAuditRepo(),
		ownerID:         primitive.NewObjectID(),
	}

	f.campaign = &models.Campaign{
		Slug:               "rifa-teste-abc123",
		Title:              "Rifa Teste",
		OwnerID:            f.ownerID,
		TotalNumbers:       totalNumbers,
		NumberPrice:        10.0,
		MaxPerBuyer:        10,
		ReservationMinutes: 30,
		Status:             models.CampaignStatusActive,
	}
	_ = f.campaignRepo.Create(context.Background(), f.campaign)

	tickets := make([]*models.Ticket, 0, totalNumbers)
	for n := 0; n < totalNumbers; n++ {
		tickets = append(tickets, &models.Ticket{
			CampaignID: f.campaign.ID,
			Number:     n,
			Status:     models.TicketStatusAvailable,
		})
	}
	_ = f.ticketRepo.CreateMany(context.Background(), tickets)

	f.prize = &models.Prize{CampaignID: f.campaign.ID, Position: 1, Name: "Prêmio Principal"}
	_ = f.prizeRepo.CreateMany(context.Background(), []*models.Prize{f.prize})

	return f
}

// Interface conformance for the fakes
var (
	_ repositories.OrganizerRepository    = (*fakeOrganizerRepo)(nil)
	_ repositories.CampaignRepository     = (*fakeCampaignRepo)(nil)
	_ repositories.TicketRepository       = (*fakeTicketRepo)(nil)
	_ repositories.BuyerRepository        = (*fakeBuyerRepo)(nil)
	_ repositories.TransactionRepository  = (*fakeTransactionRepo)(nil)
	_ repositories.PrizeRepository        = (*fakePrizeRepo)(nil)
	_ repositories.DrawAuditRepository    = (*fakeDrawAuditRepo)(nil)
	_ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ NotificationService                 = nopNotifier{}
)
