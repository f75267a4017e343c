// Package report renders report rows as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hongminglow/grocery-cli/internal/models"
)

var divider = "\n" + strings.Repeat("-", 80) + "\n\n"

// Divider separates one report from the menu above it.
func Divider(w io.Writer) {
	fmt.Fprint(w, divider)
}

// WeekdayFavorites prints every weekday followed by its most purchased products.
func WeekdayFavorites(w io.Writer, rows []models.DayFavorite) error {
	byDay := make([][]string, len(models.Weekdays))
	var unknown []string
	for _, r := range rows {
		if r.Day < 0 || r.Day >= len(models.Weekdays) {
			unknown = append(unknown, fmt.Sprintf("%s (day %d)", r.Product, r.Day))
			continue
		}
		byDay[r.Day] = append(byDay[r.Day], r.Product)
	}

	fmt.Fprintln(w, "Most popular items by day of week:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, day := range models.Weekdays {
		fmt.Fprintf(tw, "%s:\t%s\n", day, strings.Join(byDay[i], ", "))
	}
	if len(unknown) > 0 {
		fmt.Fprintf(tw, "Unknown:\t%s\n", strings.Join(unknown, ", "))
	}
	return tw.Flush()
}

// CartAverages prints the average cart size per user.
func CartAverages(w io.Writer, rows []models.CartAverage) error {
	fmt.Fprintln(w, "Average items in a user's cart:")
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{strconv.FormatInt(r.UserID, 10), strconv.FormatFloat(r.AvgItems, 'f', 4, 64)})
	}
	return table(w, []string{"User ID", "# of items"}, cells)
}

// ReturningCustomers prints the number of customers with more than one order.
func ReturningCustomers(w io.Writer, n int64) error {
	_, err := fmt.Fprintf(w, "Number of returning customers: %d\n", n)
	return err
}

// PopularAisles prints aisles ordered by visits.
func PopularAisles(w io.Writer, rows []models.AislePopularity) error {
	fmt.Fprintln(w, "Most popular aisles:")
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{strconv.FormatInt(r.AisleID, 10), r.Aisle, strconv.FormatInt(r.Visits, 10)})
	}
	return table(w, []string{"ID", "Aisle Name", "Number of visits"}, cells)
}

// AisleFavorites prints the most purchased product of each aisle.
func AisleFavorites(w io.Writer, rows []models.AisleFavorite) error {
	fmt.Fprintln(w, "Most popular item per aisle:")
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			strconv.FormatInt(r.AisleID, 10),
			r.Aisle,
			strconv.FormatInt(r.ProductID, 10),
			r.Product,
			strconv.FormatInt(r.Purchases, 10),
		})
	}
	return table(w, []string{"Aisle ID", "Aisle", "Product ID", "Product", "Purchases"}, cells)
}

func table(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeRow(tw, headers)
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	writeRow(tw, dashes)
	for _, row := range rows {
		writeRow(tw, row)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "  (no rows)")
	}
	return nil
}

func writeRow(tw *tabwriter.Writer, cells []string) {
	fmt.Fprint(tw, "  ")
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(tw, "\t| ")
		}
		fmt.Fprint(tw, strings.TrimSpace(c))
	}
	fmt.Fprintln(tw)
}
