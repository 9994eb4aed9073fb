package usecase

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the database. Transactions run one at
// a time and are rolled back when fn fails; unique columns are enforced the
// way the migrations declare them.
type memStore struct {
	mu       sync.Mutex
	txHandle *gorm.DB

	patients           map[uuid.UUID]entity.Patient
	doctors            map[uuid.UUID]entity.Doctor
	pharmacists        map[uuid.UUID]entity.Pharmacist
	specializations    map[int]entity.Specialization
	nextSpecialization int
	patientProfiles    map[uuid.UUID]entity.PatientProfile
	doctorProfiles     map[uuid.UUID]entity.DoctorProfile
	pharmacistProfiles map[uuid.UUID]entity.PharmacistProfile
	auditLogs          []entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		txHandle:           &gorm.DB{},
		patients:           map[uuid.UUID]entity.Patient{},
		doctors:            map[uuid.UUID]entity.Doctor{},
		pharmacists:        map[uuid.UUID]entity.Pharmacist{},
		specializations:    map[int]entity.Specialization{},
		patientProfiles:    map[uuid.UUID]entity.PatientProfile{},
		doctorProfiles:     map[uuid.UUID]entity.DoctorProfile{},
		pharmacistProfiles: map[uuid.UUID]entity.PharmacistProfile{},
	}
}

// guard locks the store for calls made outside a transaction. Calls on the
// transaction handle already hold the lock.
func (s *memStore) guard(db *gorm.DB) func() {
	if db == s.txHandle {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *memStore) DB(ctx context.Context) *gorm.DB {
	return nil
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(s.txHandle); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	patients           map[uuid.UUID]entity.Patient
	doctors            map[uuid.UUID]entity.Doctor
	pharmacists        map[uuid.UUID]entity.Pharmacist
	specializations    map[int]entity.Specialization
	nextSpecialization int
	patientProfiles    map[uuid.UUID]entity.PatientProfile
	doctorProfiles     map[uuid.UUID]entity.DoctorProfile
	pharmacistProfiles map[uuid.UUID]entity.PharmacistProfile
	auditLogs          []entity.AuditLog
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() storeSnapshot {
	return storeSnapshot{
		patients:           copyMap(s.patients),
		doctors:            copyMap(s.doctors),
		pharmacists:        copyMap(s.pharmacists),
		specializations:    copyMap(s.specializations),
		nextSpecialization: s.nextSpecialization,
		patientProfiles:    copyMap(s.patientProfiles),
		doctorProfiles:     copyMap(s.doctorProfiles),
		pharmacistProfiles: copyMap(s.pharmacistProfiles),
		auditLogs:          append([]entity.AuditLog(nil), s.auditLogs...),
	}
}

func (s *memStore) restore(snap storeSnapshot) {
	s.patients = snap.patients
	s.doctors = snap.doctors
	s.pharmacists = snap.pharmacists
	s.specializations = snap.specializations
	s.nextSpecialization = snap.nextSpecialization
	s.patientProfiles = snap.patientProfiles
	s.doctorProfiles = snap.doctorProfiles
	s.pharmacistProfiles = snap.pharmacistProfiles
	s.auditLogs = snap.auditLogs
}

// duplicateAccountField returns the first unique account column candidate
// shares with an existing row other than itself.
func duplicateAccountField(candidate entity.Account, existing []entity.Account) error {
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		switch {
		case other.Email == candidate.Email:
			return &entity.DuplicateKeyError{Field: "email"}
		case other.UserName == candidate.UserName:
			return &entity.DuplicateKeyError{Field: "user_name"}
		case other.NationalIDNumber == candidate.NationalIDNumber:
			return &entity.DuplicateKeyError{Field: "national_id_number"}
		case other.PhoneNumber == candidate.PhoneNumber:
			return &entity.DuplicateKeyError{Field: "phone_number"}
		case other.Slug == candidate.Slug:
			return &entity.DuplicateKeyError{Field: "slug"}
		}
	}
	return nil
}

// Patients

type fakePatientRepo struct{ s *memStore }

func (r *fakePatientRepo) accounts() []entity.Account {
	var out []entity.Account
	for _, p := range r.s.patients {
		out = append(out, p.Account)
	}
	return out
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	defer r.s.guard(db)()
	if err := duplicateAccountField(patient.Account, r.accounts()); err != nil {
		return err
	}
	row := *patient
	row.Profile = nil
	r.s.patients[row.ID] = row
	return nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	defer r.s.guard(db)()
	if err := duplicateAccountField(patient.Account, r.accounts()); err != nil {
		return err
	}
	old := r.s.patients[patient.ID]
	row := *patient
	row.Slug = old.Slug
	row.CreatedAt = old.CreatedAt
	row.Profile = nil
	r.s.patients[row.ID] = row
	return nil
}

func (r *fakePatientRepo) load(row entity.Patient) *entity.Patient {
	if profile, ok := r.s.patientProfiles[row.ID]; ok {
		row.Profile = &profile
	}
	return &row
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	defer r.s.guard(db)()
	row, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	return r.load(row), nil
}

func (r *fakePatientRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	defer r.s.guard(db)()
	row, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakePatientRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.patients {
		if row.Email == email {
			return r.load(row), nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.patients {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	defer r.s.guard(db)()
	if _, ok := r.s.patients[id]; !ok {
		return 0, nil
	}
	delete(r.s.patients, id)
	delete(r.s.patientProfiles, id)
	return 1, nil
}

// Doctors

type fakeDoctorRepo struct {
	s *memStore

	// afterRead runs once FindByID has copied a row, standing in for a
	// write committed by another session.
	afterRead func(id uuid.UUID)
}

func (r *fakeDoctorRepo) checkUnique(doctor *entity.Doctor) error {
	var accounts []entity.Account
	for _, d := range r.s.doctors {
		accounts = append(accounts, d.Account)
		if d.ID != doctor.ID && d.MembershipNo == doctor.MembershipNo {
			return &entity.DuplicateKeyError{Field: "membership_no"}
		}
	}
	if err := duplicateAccountField(doctor.Account, accounts); err != nil {
		return err
	}
	if _, ok := r.s.specializations[doctor.SpecializationID]; !ok {
		return &entity.ValidationError{Field: "specialization_id", Rule: entity.RuleReference, Message: "specialization_id does not exist"}
	}
	return nil
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	defer r.s.guard(db)()
	if err := r.checkUnique(doctor); err != nil {
		return err
	}
	row := *doctor
	row.Specialization, row.Profile = nil, nil
	r.s.doctors[row.ID] = row
	return nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	defer r.s.guard(db)()
	if err := r.checkUnique(doctor); err != nil {
		return err
	}
	old := r.s.doctors[doctor.ID]
	row := *doctor
	row.Slug = old.Slug
	row.CreatedAt = old.CreatedAt
	row.Active = old.Active
	row.Specialization, row.Profile = nil, nil
	r.s.doctors[row.ID] = row
	return nil
}

func (r *fakeDoctorRepo) UpdateActive(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	defer r.s.guard(db)()
	row, ok := r.s.doctors[doctor.ID]
	if !ok {
		return nil
	}
	row.Active = doctor.Active
	row.UpdatedAt = doctor.UpdatedAt
	r.s.doctors[row.ID] = row
	return nil
}

func (r *fakeDoctorRepo) load(row entity.Doctor) *entity.Doctor {
	if profile, ok := r.s.doctorProfiles[row.ID]; ok {
		row.Profile = &profile
	}
	if specialization, ok := r.s.specializations[row.SpecializationID]; ok {
		row.Specialization = &specialization
	}
	return &row
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	defer r.s.guard(db)()
	row, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	doctor := r.load(row)
	if r.afterRead != nil {
		r.afterRead(id)
	}
	return doctor, nil
}

func (r *fakeDoctorRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	defer r.s.guard(db)()
	row, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeDoctorRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.doctors {
		if row.Email == email {
			return r.load(row), nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.doctors {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Doctor, error) {
	defer r.s.guard(db)()
	var out []entity.Doctor
	for _, row := range r.s.doctors {
		if filter.Active != nil && row.Active != *filter.Active {
			continue
		}
		out = append(out, *r.load(row))
	}
	return out, nil
}

func (r *fakeDoctorRepo) CountBySpecialization(ctx context.Context, db *gorm.DB, specializationID int) (int64, error) {
	defer r.s.guard(db)()
	var n int64
	for _, row := range r.s.doctors {
		if row.SpecializationID == specializationID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	defer r.s.guard(db)()
	if _, ok := r.s.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.s.doctors, id)
	delete(r.s.doctorProfiles, id)
	return 1, nil
}

// Pharmacists

type fakePharmacistRepo struct{ s *memStore }

func (r *fakePharmacistRepo) accounts() []entity.Account {
	var out []entity.Account
	for _, p := range r.s.pharmacists {
		out = append(out, p.Account)
	}
	return out
}

func (r *fakePharmacistRepo) Create(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	defer r.s.guard(db)()
	if err := duplicateAccountField(pharmacist.Account, r.accounts()); err != nil {
		return err
	}
	row := *pharmacist
	row.Profile = nil
	r.s.pharmacists[row.ID] = row
	return nil
}

func (r *fakePharmacistRepo) Update(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	defer r.s.guard(db)()
	if err := duplicateAccountField(pharmacist.Account, r.accounts()); err != nil {
		return err
	}
	old := r.s.pharmacists[pharmacist.ID]
	row := *pharmacist
	row.Slug = old.Slug
	row.CreatedAt = old.CreatedAt
	row.Active = old.Active
	row.Profile = nil
	r.s.pharmacists[row.ID] = row
	return nil
}

func (r *fakePharmacistRepo) UpdateActive(ctx context.Context, db *gorm.DB, pharmacist *entity.Pharmacist) error {
	defer r.s.guard(db)()
	row, ok := r.s.pharmacists[pharmacist.ID]
	if !ok {
		return nil
	}
	row.Active = pharmacist.Active
	row.UpdatedAt = pharmacist.UpdatedAt
	r.s.pharmacists[row.ID] = row
	return nil
}

func (r *fakePharmacistRepo) load(row entity.Pharmacist) *entity.Pharmacist {
	if profile, ok := r.s.pharmacistProfiles[row.ID]; ok {
		row.Profile = &profile
	}
	return &row
}

func (r *fakePharmacistRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error) {
	defer r.s.guard(db)()
	row, ok := r.s.pharmacists[id]
	if !ok {
		return nil, nil
	}
	return r.load(row), nil
}

func (r *fakePharmacistRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pharmacist, error) {
	defer r.s.guard(db)()
	row, ok := r.s.pharmacists[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakePharmacistRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Pharmacist, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.pharmacists {
		if row.Email == email {
			return r.load(row), nil
		}
	}
	return nil, nil
}

func (r *fakePharmacistRepo) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.pharmacists {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePharmacistRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.AccountFilter) ([]entity.Pharmacist, error) {
	defer r.s.guard(db)()
	var out []entity.Pharmacist
	for _, row := range r.s.pharmacists {
		if filter.Active != nil && row.Active != *filter.Active {
			continue
		}
		out = append(out, *r.load(row))
	}
	return out, nil
}

func (r *fakePharmacistRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	defer r.s.guard(db)()
	if _, ok := r.s.pharmacists[id]; !ok {
		return 0, nil
	}
	delete(r.s.pharmacists, id)
	delete(r.s.pharmacistProfiles, id)
	return 1, nil
}

// Specializations

type fakeSpecializationRepo struct{ s *memStore }

func (r *fakeSpecializationRepo) checkUnique(specialization *entity.Specialization) error {
	for _, other := range r.s.specializations {
		if other.ID == specialization.ID {
			continue
		}
		if other.Name == specialization.Name {
			return &entity.DuplicateKeyError{Field: "name"}
		}
		if other.Slug == specialization.Slug {
			return &entity.DuplicateKeyError{Field: "slug"}
		}
	}
	return nil
}

func (r *fakeSpecializationRepo) Create(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	defer r.s.guard(db)()
	if err := r.checkUnique(specialization); err != nil {
		return err
	}
	r.s.nextSpecialization++
	specialization.ID = r.s.nextSpecialization
	r.s.specializations[specialization.ID] = *specialization
	return nil
}

func (r *fakeSpecializationRepo) Update(ctx context.Context, db *gorm.DB, specialization *entity.Specialization) error {
	defer r.s.guard(db)()
	if err := r.checkUnique(specialization); err != nil {
		return err
	}
	row := r.s.specializations[specialization.ID]
	row.Name = specialization.Name
	r.s.specializations[row.ID] = row
	return nil
}

func (r *fakeSpecializationRepo) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Specialization, error) {
	defer r.s.guard(db)()
	row, ok := r.s.specializations[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeSpecializationRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialization, error) {
	defer r.s.guard(db)()
	var out []entity.Specialization
	for _, row := range r.s.specializations {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeSpecializationRepo) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	defer r.s.guard(db)()
	if _, ok := r.s.specializations[id]; !ok {
		return 0, nil
	}
	delete(r.s.specializations, id)
	return 1, nil
}

// Profiles

type fakePatientProfileRepo struct{ s *memStore }

func (r *fakePatientProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	defer r.s.guard(db)()
	if _, ok := r.s.patientProfiles[profile.PatientID]; ok {
		return &entity.DuplicateKeyError{Field: "patient_id"}
	}
	row := *profile
	row.Patient = nil
	r.s.patientProfiles[profile.PatientID] = row
	return nil
}

func (r *fakePatientProfileRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (*entity.PatientProfile, error) {
	defer r.s.guard(db)()
	row, ok := r.s.patientProfiles[patientID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

type fakeDoctorProfileRepo struct{ s *memStore }

func (r *fakeDoctorProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	defer r.s.guard(db)()
	if _, ok := r.s.doctorProfiles[profile.DoctorID]; ok {
		return &entity.DuplicateKeyError{Field: "doctor_id"}
	}
	row := *profile
	row.Doctor = nil
	r.s.doctorProfiles[profile.DoctorID] = row
	return nil
}

func (r *fakeDoctorProfileRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	defer r.s.guard(db)()
	row, ok := r.s.doctorProfiles[doctorID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

type fakePharmacistProfileRepo struct{ s *memStore }

func (r *fakePharmacistProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PharmacistProfile) error {
	defer r.s.guard(db)()
	if _, ok := r.s.pharmacistProfiles[profile.PharmacistID]; ok {
		return &entity.DuplicateKeyError{Field: "pharmacist_id"}
	}
	row := *profile
	row.Pharmacist = nil
	r.s.pharmacistProfiles[profile.PharmacistID] = row
	return nil
}

func (r *fakePharmacistProfileRepo) FindByPharmacistID(ctx context.Context, db *gorm.DB, pharmacistID uuid.UUID) (*entity.PharmacistProfile, error) {
	defer r.s.guard(db)()
	row, ok := r.s.pharmacistProfiles[pharmacistID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// Audit logs

type fakeAuditLogRepo struct{ s *memStore }

func (r *fakeAuditLogRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	defer r.s.guard(db)()
	log.ID = int64(len(r.s.auditLogs) + 1)
	r.s.auditLogs = append(r.s.auditLogs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(ctx context.Context, db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	defer r.s.guard(db)()
	var out []entity.AuditLog
	for i := len(r.s.auditLogs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.s.auditLogs[i])
	}
	return out, nil
}

func (r *fakeAuditLogRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	defer r.s.guard(db)()
	for _, row := range r.s.auditLogs {
		if row.ID == id {
			return &row, nil
		}
	}
	return nil, nil
}

// Collaborators

// countingHasher is a reversible stand-in for bcrypt that counts Hash calls.
type countingHasher struct {
	calls atomic.Int64
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.calls.Add(1)
	return "digest:" + plain, nil
}

func (h *countingHasher) Verify(plain, digest string) bool {
	return digest == "digest:"+plain
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateAccessToken(accountID uuid.UUID, role, email string) (string, string, error) {
	tokenID := uuid.NewString()
	return "token-" + role + "-" + tokenID, tokenID, nil
}

func (fakeTokenIssuer) GetAccessExpiry() time.Duration {
	return 15 * time.Minute
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]bool{}}
}

func (s *fakeTokenStore) Store(ctx context.Context, accountID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[service.AccessTokenKey(accountID, tokenID)] = true
	return nil
}

func (s *fakeTokenStore) Exists(ctx context.Context, accountID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[service.AccessTokenKey(accountID, tokenID)], nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, accountID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, service.AccessTokenKey(accountID, tokenID))
	return nil
}

func (s *fakeTokenStore) RevokeAll(ctx context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := service.AccessTokenKey(accountID, "")
	for key := range s.tokens {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.tokens, key)
		}
	}
	return nil
}

func (s *fakeTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.AccountEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event service.AccountEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// testEnv wires every usecase to one memStore.
type testEnv struct {
	store      *memStore
	hasher     *countingHasher
	tokenStore *fakeTokenStore
	events     *recordingPublisher
	now        time.Time

	auth            *authUsecase
	patients        *patientUsecase
	doctors         *doctorUsecase
	pharmacists     *pharmacistUsecase
	specializations *specializationUsecase
	auditLogs       AuditLogUsecase
}

func newTestEnv() *testEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newMemStore()
	h := &countingHasher{}
	tokenStore := newFakeTokenStore()
	events := &recordingPublisher{}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	patientRepo := &fakePatientRepo{s: store}
	doctorRepo := &fakeDoctorRepo{s: store}
	pharmacistRepo := &fakePharmacistRepo{s: store}
	specializationRepo := &fakeSpecializationRepo{s: store}
	auditLogRepo := &fakeAuditLogRepo{s: store}

	profileService := service.NewProfileService(log, &fakePatientProfileRepo{s: store}, &fakeDoctorProfileRepo{s: store}, &fakePharmacistProfileRepo{s: store})
	auditService := service.NewAuditService(log, auditLogRepo)

	auth := NewAuthUsecase(store, log, patientRepo, doctorRepo, pharmacistRepo, specializationRepo,
		profileService, auditService, events, h, fakeTokenIssuer{}, tokenStore).(*authUsecase)
	auth.now = clock
	patients := NewPatientUsecase(store, log, patientRepo, auditService, events, h, tokenStore).(*patientUsecase)
	patients.now = clock
	doctors := NewDoctorUsecase(store, log, doctorRepo, specializationRepo, profileService, auditService, events, h, tokenStore).(*doctorUsecase)
	doctors.now = clock
	pharmacists := NewPharmacistUsecase(store, log, pharmacistRepo, profileService, auditService, events, h, tokenStore).(*pharmacistUsecase)
	pharmacists.now = clock
	specializations := NewSpecializationUsecase(store, log, specializationRepo, doctorRepo, auditService).(*specializationUsecase)
	specializations.now = clock

	return &testEnv{
		store:           store,
		hasher:          h,
		tokenStore:      tokenStore,
		events:          events,
		now:             now,
		auth:            auth,
		patients:        patients,
		doctors:         doctors,
		pharmacists:     pharmacists,
		specializations: specializations,
		auditLogs:       NewAuditLogUsecase(store, log, auditLogRepo),
	}
}
