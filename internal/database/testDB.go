package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported test users, programs and applicants
var (
	TestAdminUser    m.User
	TestUserStudent1 m.User
	TestUserStudent2 m.User
	TestStudent1     m.StudentProfile
	TestStudent2     m.StudentProfile

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded programs
	TestProgramInterview m.Program
	TestProgramFirstCome m.Program

	// Exported seeded applications
	TestApplicant1 m.Applicant
	TestApplicant2 m.Applicant
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample students, programs and applications
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample students, programs and applicants if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that may get created during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	emails := []*string{ptr("student1@example.com"), ptr("student2@example.com"), ptr("admin@example.com")}
	userSpecs := []struct {
		username string
		email    *string
		role     string
	}{
		{"student_1", emails[0], m.RoleStudent},
		{"student_2", emails[1], m.RoleStudent},
		{"admin_user", emails[2], m.RoleAdmin},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			Email:    s.email,
			Role:     s.role,
			Password: hashedPwd,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "student_1":
			TestUserStudent1 = u
		case "student_2":
			TestUserStudent2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	gpa1, gpa2 := 3.45, 3.80
	profiles := []m.StudentProfile{
		{
			UserID: TestUserStudent1.ID,
			StudentBio: m.StudentBio{
				PrefixTH:    "นาย",
				FirstNameTH: "ณัฐวงศ์",
				LastNameTH:  "ศรีสุข",
				PrefixEN:    "Mr.",
				FirstNameEN: "Nattawong",
				LastNameEN:  "Srisuk",
				Phone:       "0812345671",
				Email:       "student1@example.com",
				School:      "Demonstration School",
				Grade:       10,
				Room:        2,
				GPA:         &gpa1,
				ParentName:  "สมชาย ศรีสุข",
				ParentPhone: "0898765431",
			},
		},
		{
			UserID: TestUserStudent2.ID,
			StudentBio: m.StudentBio{
				PrefixTH:    "นางสาว",
				FirstNameTH: "พิมพ์ชนก",
				LastNameTH:  "วงศ์ทอง",
				PrefixEN:    "Ms.",
				FirstNameEN: "Pimchanok",
				LastNameEN:  "Wongthong",
				Phone:       "0812345672",
				Email:       "student2@example.com",
				School:      "Demonstration School",
				Grade:       11,
				Room:        1,
				GPA:         &gpa2,
				ParentName:  "สมหญิง วงศ์ทอง",
				ParentPhone: "0898765432",
			},
		},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}
	TestStudent1 = profiles[0]
	TestStudent2 = profiles[1]

	now := time.Now()
	programs := []m.Program{
		{
			EditableProgramInfo: m.EditableProgramInfo{
				Title:               "Intensive English Programme at Cambridge",
				ShortDescription:    "Three weeks of language immersion in the UK.",
				Status:              m.ProgramStatusOpen,
				AdmissionType:       m.AdmissionInterview,
				Continent:           "Europe",
				City:                "Cambridge",
				Country:             "United Kingdom",
				CountryCode:         "GB",
				StartDate:           now.AddDate(0, 3, 0),
				EndDate:             now.AddDate(0, 3, 21),
				ApplicationDeadline: now.AddDate(0, 1, 0),
				RegistrationOpen:    now.AddDate(0, -1, 0),
				MaxParticipants:     30,
				PriceAmount:         159000,
				PriceCurrency:       "THB",
				DisplayPrice:        "159,000 บาท",
				EligibleGrades:      pq.Int64Array{10, 11, 12},
				Tags:                pq.StringArray{"english", "uk"},
			},
			Documents: []m.DocumentRequirement{
				{Name: "ใบสมัคร", IsRequired: true},
				{Name: "สำเนาหนังสือเดินทาง", IsRequired: true},
			},
		},
		{
			EditableProgramInfo: m.EditableProgramInfo{
				Title:               "STEM Winter Camp in Singapore",
				ShortDescription:    "One week of labs and campus visits.",
				Status:              m.ProgramStatusOpen,
				AdmissionType:       m.AdmissionFirstCome,
				Continent:           "Asia",
				City:                "Singapore",
				Country:             "Singapore",
				CountryCode:         "SG",
				StartDate:           now.AddDate(0, 2, 0),
				EndDate:             now.AddDate(0, 2, 7),
				ApplicationDeadline: now.AddDate(0, 0, 10),
				RegistrationOpen:    now.AddDate(0, -1, 0),
				MaxParticipants:     40,
				PriceAmount:         89000,
				PriceCurrency:       "THB",
				DisplayPrice:        "89,000 บาท",
				EligibleGrades:      pq.Int64Array{9, 10, 11, 12},
				Tags:                pq.StringArray{"stem", "singapore"},
			},
			Documents: []m.DocumentRequirement{
				{Name: "ใบสมัคร", IsRequired: true},
			},
		},
	}
	if err := db.Create(&programs).Error; err != nil {
		return err
	}
	TestProgramInterview = programs[0]
	TestProgramFirstCome = programs[1]

	applicants := []m.Applicant{
		{
			ProgramID: TestProgramInterview.ID,
			UserID:    TestUserStudent1.ID,
			Student:   TestStudent1.StudentBio,
			AppliedAt: now,
		},
		{
			ProgramID: TestProgramFirstCome.ID,
			UserID:    TestUserStudent2.ID,
			Student:   TestStudent2.StudentBio,
			AppliedAt: now,
		},
	}
	if err := db.Create(&applicants).Error; err != nil {
		return err
	}
	TestApplicant1 = applicants[0]
	TestApplicant2 = applicants[1]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"student_1", "student_2", "admin_user",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "student_1":
			TestUserStudent1 = u
		case "student_2":
			TestUserStudent2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	_ = db.First(&TestStudent1, "user_id = ?", TestUserStudent1.ID).Error
	_ = db.First(&TestStudent2, "user_id = ?", TestUserStudent2.ID).Error

	var programs []m.Program
	if err := db.Preload("Documents").Order("id ASC").Limit(2).Find(&programs).Error; err == nil {
		for _, p := range programs {
			if p.AdmissionType == m.AdmissionInterview {
				TestProgramInterview = p
			} else {
				TestProgramFirstCome = p
			}
		}
	}

	_ = db.First(&TestApplicant1, "user_id = ?", TestUserStudent1.ID).Error
	_ = db.First(&TestApplicant2, "user_id = ?", TestUserStudent2.ID).Error

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
