package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	"github.com/nagomiya/todokit/authsvc/pkg/authendpoint"
	"github.com/nagomiya/todokit/authsvc/pkg/authservice"
	"github.com/nagomiya/todokit/authsvc/pkg/authtransport"
	"github.com/nagomiya/todokit/tasksvc"
	taskgorm "github.com/nagomiya/todokit/tasksvc/db/gorm"
	"github.com/nagomiya/todokit/tasksvc/pkg/taskendpoint"
	"github.com/nagomiya/todokit/tasksvc/pkg/taskservice"
	"github.com/nagomiya/todokit/tasksvc/pkg/tasktransport"
	"github.com/nagomiya/todokit/usersvc"
	usergorm "github.com/nagomiya/todokit/usersvc/db/gorm"
	"github.com/nagomiya/todokit/usersvc/pkg/userendpoint"
	"github.com/nagomiya/todokit/usersvc/pkg/userservice"
	"github.com/nagomiya/todokit/usersvc/pkg/usertransport"
	"github.com/oklog/oklog/pkg/group"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"
)

func main() {
	fs := flag.NewFlagSet("todokit", flag.ExitOnError)
	var (
		httpAddr = fs.String(
			"http.addr",
			getEnv("HTTP_ADDR", ":8000"),
			"HTTP (JSON) listen address",
		)
		databaseURL = fs.String(
			"database.url",
			getEnv("DATABASE_URL", ""),
			"Database URL",
		)
	)

	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	fs.Parse(os.Args[1:])

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	var db *libgorm.DB
	var err error
	{
		if *databaseURL != "" {
			db, err = libgorm.Open(postgres.Open(*databaseURL), &libgorm.Config{})
		} else {
			db, err = libgorm.Open(sqlite.Open("todokit.db"), &libgorm.Config{})
		}
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}

	db.AutoMigrate(&usersvc.User{}, &tasksvc.Task{})

	// The signing secret lives for the lifetime of the process; a restart
	// invalidates every outstanding token.
	secret := authservice.NewSecret()
	if secret == nil {
		logger.Log("err", "unable to generate signing secret")
		os.Exit(1)
	}

	var (
		tokenizer = authservice.NewTokenizer(secret, authservice.AccessTokenExpiry())
		users     = usergorm.NewUserRepository(db)
		tasks     = taskgorm.NewTaskRepository(db)
		hasher    = userservice.NewBcryptHasher()
	)

	var userSvc userservice.Service
	{
		counter, latency := serviceMetrics("user_service")
		userSvc = userservice.New(users, hasher, logger, counter, latency)
	}

	var authSvc authservice.Service
	{
		counter, latency := serviceMetrics("auth_service")
		authSvc = authservice.New(users, hasher, tokenizer, logger, counter, latency)
	}

	var taskSvc taskservice.Service
	{
		counter, latency := serviceMetrics("task_service")
		taskSvc = taskservice.New(tasks, logger, counter, latency)
	}

	var (
		userEndpoints = userendpoint.New(userSvc, logger)
		authEndpoints = authendpoint.New(authSvc, logger)
		taskEndpoints = taskendpoint.New(taskSvc, logger)
		authenticate  = authtransport.NewAuthenticator(tokenizer, users)
	)

	r := mux.NewRouter()
	{
		r.Methods("GET").Path("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(`{"message":"todokit"}`))
		})
		r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
		r.PathPrefix("/user").Handler(usertransport.NewHTTPHandler(userEndpoints, logger))
		r.PathPrefix("/authenticate").Handler(authtransport.NewHTTPHandler(authEndpoints, logger))
		r.PathPrefix("/task").Handler(tasktransport.NewHTTPHandler(taskEndpoints, authenticate, logger))
	}

	var g group.Group
	{
		httpListener, err := net.Listen("tcp", *httpAddr)
		if err != nil {
			logger.Log("transport", "HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "HTTP", "addr", *httpAddr)
			return http.Serve(httpListener, r)
		}, func(error) {
			httpListener.Close()
		})
	}
	{
		// This function just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-c:
				return fmt.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}
	logger.Log("exit", g.Run())
}

func serviceMetrics(subsystem string) (metrics.Counter, metrics.Histogram) {
	counter := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "todokit",
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, []string{"method"})
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: "todokit",
		Subsystem: subsystem,
		Name:      "request_latency_seconds",
		Help:      "Total duration of requests in seconds.",
	}, []string{"method"})

	return counter, latency
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = fallback
	}
	return value
}
