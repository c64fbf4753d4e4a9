package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/config"
	appHTTP "github.com/kiranastores/attendance-backend-go/internal/handler/http"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/cron"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/database"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/facematch"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/jwt"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/storage"
	"github.com/kiranastores/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kiranastores/attendance-backend-go/internal/service/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/service/file"
	reportService "github.com/kiranastores/attendance-backend-go/internal/service/report"
	"github.com/kiranastores/attendance-backend-go/internal/service/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	faceClient := facematch.NewClient(cfg.FaceMatch)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	fileService := file.NewService(fileStorage)

	policy, err := status.PolicyFromConfig(cfg.Policy)
	if err != nil {
		log.Fatal("Invalid attendance policy: ", err)
	}

	attendanceSvc := attendanceService.NewService(
		db,
		attendanceRepo,
		employeeRepo,
		branchRepo,
		requestRepo,
		fileService,
		faceClient,
		cfg.Office,
		cfg.Policy,
		loc,
	)
	reportSvc := reportService.NewService(
		attendanceRepo,
		employeeRepo,
		requestRepo,
		holidayRepo,
		policy,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler(loc)
	sweep := cron.NewAttendanceSweep(attendanceRepo, employeeRepo, loc)
	scheduler.AddDailyJob("attendance-sweep", 0, 5, sweep.Run)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
