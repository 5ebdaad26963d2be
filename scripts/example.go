package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/downlabs/citydash/pkg/client"
	"github.com/downlabs/citydash/pkg/models"
	"github.com/downlabs/citydash/pkg/view"
)

func main() {
	// Create a client against the local backends
	c := client.New(client.DefaultWeatherURL, client.DefaultParkingURL, client.DefaultTimeout)
	ctx := context.Background()

	// Example 1: Current weather by city name
	fmt.Println("=== Current Weather: New York ===")
	report, err := c.Current(ctx, "New York", models.UnitsMetric)
	if err != nil {
		log.Fatal(client.ErrorMessage(err))
	}

	metric := view.FormatWeather(report)
	fmt.Printf("%s %s  %s\n", metric.Icon, metric.Title, metric.Description)
	fmt.Printf("  Temperature: %s (feels like %s)\n", metric.Temp, metric.FeelsLike)
	fmt.Printf("  Humidity: %s  Wind: %s\n", metric.Humidity, metric.Wind)

	// Example 2: Current weather by coordinates
	fmt.Println("\n=== Current Weather: 51.51, -0.13 ===")
	report, err = c.Coordinates(ctx, 51.5074, -0.1278, models.UnitsMetric)
	if err != nil {
		log.Fatal(client.ErrorMessage(err))
	}
	byCoords := view.FormatWeather(report)
	fmt.Printf("%s %s: %s\n", byCoords.Icon, byCoords.Title, byCoords.Temp)

	// Example 3: 5-day forecast, grouped by calendar date
	fmt.Println("\n=== 5-Day Forecast: Tokyo ===")
	forecast, err := c.Forecast(ctx, "Tokyo", models.UnitsMetric)
	if err != nil {
		log.Fatal(client.ErrorMessage(err))
	}

	grouped := view.FormatForecast(forecast)
	fmt.Printf("%s, %d days:\n", grouped.Title, len(grouped.Days))
	for _, day := range grouped.Days {
		fmt.Printf("  %s %s %-22s %s (%s / %s)\n",
			day.Date, day.Icon, day.Description, day.Temp, day.Max, day.Min)
	}

	// Example 4: The same city in imperial units
	fmt.Println("\n=== Units Comparison: New York ===")
	imperial, err := c.Current(ctx, "New York", models.UnitsImperial)
	if err != nil {
		log.Fatal(client.ErrorMessage(err))
	}
	fmt.Printf("metric: %s  imperial: %s\n", metric.Temp, view.FormatWeather(imperial).Temp)

	// Example 5: Plate detection when an image path is given
	if len(os.Args) > 1 {
		fmt.Println("\n=== Plate Detection ===")
		result, err := c.DetectFile(ctx, os.Args[1])
		if err != nil {
			log.Fatal(client.ErrorMessage(err))
		}

		token := fmt.Sprintf("%d", time.Now().UnixMilli())
		d := view.FormatDetection(result, c.ParkingURL(), token)
		fmt.Printf("Plate %s logged at %s, fee %s\n", d.Plate, d.EntryTime, d.Fee)
		fmt.Printf("  annotated: %s\n", d.AnnoURL)
		fmt.Printf("  slip:      %s\n", d.SlipURL)
	}

	// Example 6: Liveness probe
	fmt.Println("\n=== Health Check ===")
	health, err := c.Health(ctx)
	if err != nil {
		log.Fatal(client.ErrorMessage(err))
	}
	fmt.Printf("weather service is %s (reported at %s)\n", health.Status, health.Timestamp)
}
