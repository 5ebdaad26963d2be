package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/downlabs/citydash/pkg/client"
	"github.com/downlabs/citydash/pkg/config"
	"github.com/downlabs/citydash/pkg/tui"
	"github.com/downlabs/citydash/pkg/validate"
	"github.com/downlabs/citydash/pkg/view"
)

var (
	cfgFile        string
	weatherURL     string
	parkingURL     string
	units          string
	timeoutSeconds int
	logFile        string
	verbose        bool
)

var (
	cfg       config.Config
	apiClient *client.Client
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "citydash",
	Short: "Terminal dashboard for city weather and parking",
	Long: `citydash talks to the local weather and parking services: an
interactive dashboard by default, plus one-shot subcommands for use in
scripts.`,
	PersistentPreRunE: setup,
	Run:               runDash,
	SilenceUsage:      true,
}

var currentCmd = &cobra.Command{
	Use:   "current [city]",
	Short: "Show current weather for a city",
	Args:  cobra.ArbitraryArgs,
	Run:   runCurrent,
}

var coordsCmd = &cobra.Command{
	Use:   "coords <lat> <lon>",
	Short: "Show current weather at coordinates",
	Args:  cobra.ExactArgs(2),
	Run:   runCoords,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast [city]",
	Short: "Show the 5-day forecast for a city",
	Args:  cobra.ArbitraryArgs,
	Run:   runForecast,
}

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Upload an image and log the detected plate",
	Args:  cobra.ExactArgs(1),
	Run:   runDetect,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the weather service liveness endpoint",
	Args:  cobra.NoArgs,
	Run:   runHealth,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&weatherURL, "weather-url", "", "Weather service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&parkingURL, "parking-url", "", "Parking service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&units, "units", "u", "", "Units: metric, imperial, or kelvin (overrides config)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "HTTP timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringVar(&logFile, "log", "", "Write dashboard logs to this file")

	rootCmd.AddCommand(currentCmd, coordsCmd, forecastCmd, detectCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup layers flags over the config file and builds the shared client.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadFile(cfgFile)
	if err != nil {
		return err
	}

	if weatherURL != "" {
		cfg.Weather.BaseURL = weatherURL
	}
	if parkingURL != "" {
		cfg.Parking.BaseURL = parkingURL
	}
	if units != "" {
		cfg.Weather.Units = units
	}
	if timeoutSeconds > 0 {
		cfg.HTTP.TimeoutSeconds = timeoutSeconds
	}
	if err := validate.Units(cfg.Weather.Units); err != nil {
		return err
	}

	logger = newLogger(os.Stderr)
	apiClient = client.New(cfg.Weather.BaseURL, cfg.Parking.BaseURL, cfg.Timeout())
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runDash(cmd *cobra.Command, args []string) {
	// The dashboard owns the terminal, so logs go to a file or nowhere.
	dashLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		dashLogger = newLogger(f)
	}

	err := tui.Run(tui.Options{
		Backend:    apiClient,
		ParkingURL: apiClient.ParkingURL(),
		Units:      cfg.Weather.Units,
		Logger:     dashLogger,
	})
	if err != nil {
		log.Fatalf("Failed to run dashboard: %v", err)
	}
}

func runCurrent(cmd *cobra.Command, args []string) {
	city, err := validate.City(strings.Join(args, " "))
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	logger.Debug("requesting current weather", "city", city, "units", cfg.Weather.Units)
	report, err := apiClient.Current(context.Background(), city, cfg.Weather.Units)
	if err != nil {
		printError(client.ErrorMessage(err))
		os.Exit(1)
	}
	printWeather(view.FormatWeather(report))
}

func runCoords(cmd *cobra.Command, args []string) {
	lat, lon, err := validate.Coordinates(args[0], args[1])
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	logger.Debug("requesting weather by coordinates", "lat", lat, "lon", lon)
	report, err := apiClient.Coordinates(context.Background(), lat, lon, cfg.Weather.Units)
	if err != nil {
		printError(client.ErrorMessage(err))
		os.Exit(1)
	}
	printWeather(view.FormatWeather(report))
}

func runForecast(cmd *cobra.Command, args []string) {
	city, err := validate.City(strings.Join(args, " "))
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	logger.Debug("requesting forecast", "city", city, "units", cfg.Weather.Units)
	report, err := apiClient.Forecast(context.Background(), city, cfg.Weather.Units)
	if err != nil {
		printError(client.ErrorMessage(err))
		os.Exit(1)
	}
	printForecast(view.FormatForecast(report))
}

func runDetect(cmd *cobra.Command, args []string) {
	path, err := validate.File(args[0])
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	logger.Debug("uploading image", "path", path)
	result, err := apiClient.DetectFile(context.Background(), path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			printError("Cannot open " + pathErr.Path)
		} else {
			printError(client.ErrorMessage(err))
		}
		os.Exit(1)
	}

	token := strconv.FormatInt(time.Now().UnixMilli(), 10)
	printDetection(view.FormatDetection(result, apiClient.ParkingURL(), token))
}

func runHealth(cmd *cobra.Command, args []string) {
	health, err := apiClient.Health(context.Background())
	if err != nil {
		printError(client.ErrorMessage(err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("weather service %s (reported at %s)", health.Status, health.Timestamp))
}
