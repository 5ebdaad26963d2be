package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/downlabs/citydash/pkg/view"
)

var (
	// ANSI color codes
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func init() {
	// Disable colors if not in a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		colorReset = ""
		colorRed = ""
		colorGreen = ""
		colorYellow = ""
		colorPurple = ""
		colorCyan = ""
		colorBold = ""
	}
}

func printTitle(title string) {
	fmt.Printf("\n%s%s🌆 %s%s\n", colorBold, colorPurple, title, colorReset)
	fmt.Println(strings.Repeat("=", 60))
}

func printSuccess(message string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, message, colorReset)
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, message, colorReset)
}

func printStat(label string, value any) {
	fmt.Printf("  %s%s:%s %s%v%s\n", colorBold, label, colorReset, colorYellow, value, colorReset)
}

func printWeather(w view.Weather) {
	printTitle(w.Title)
	fmt.Printf("%s %s\n\n", w.Icon, w.Description)
	printStat("Temperature", w.Temp)
	printStat("Feels like", w.FeelsLike)
	printStat("Min / Max", w.MinMax)
	printStat("Humidity", w.Humidity)
	printStat("Pressure", w.Pressure)
	printStat("Visibility", w.Visibility)
	printStat("Wind", w.Wind)
	printStat("Sunrise", w.Sunrise)
	printStat("Sunset", w.Sunset)
	printStat("Coordinates", w.Coordinates)
	fmt.Printf("\n%sobserved at %s%s\n", colorCyan, w.Observed, colorReset)
}

func printForecast(f view.Forecast) {
	printTitle(f.Title + " 5-Day Forecast")
	for _, d := range f.Days {
		fmt.Printf("\n%s%s%s  %s %s\n", colorBold, d.Date, colorReset, d.Icon, d.Description)
		printStat("Temp", d.Temp)
		printStat("High / Low", d.Max+" / "+d.Min)
	}
}

func printDetection(d view.Detection) {
	printSuccess("Vehicle logged")
	printStat("Plate", d.Plate)
	printStat("Entry time", d.EntryTime)
	printStat("Fee", d.Fee)
	printStat("Annotated", d.AnnoURL)
	printStat("Plate crop", d.CropURL)
	printStat("Slip", d.SlipURL)
}
