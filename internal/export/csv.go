// Package export serialises the engine collections into delimited text with
// a fixed header row and RFC-4180 quoting.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/meridian-pos/meridian-pos/internal/store"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer}
}

func (s *csvStreamer) writeRow(row []string) error {
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.pendingLines >= csvFlushEvery {
		return s.flush()
	}
	return nil
}

func (s *csvStreamer) flush() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

// WriteProducts streams the catalog, one row per product.
func WriteProducts(w io.Writer, s store.State) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeRow([]string{"id", "name", "category", "price", "stock", "created_at"}); err != nil {
		return err
	}
	for _, p := range s.Products {
		row := []string{
			p.ID,
			p.Name,
			p.Category,
			formatDecimal(p.Price),
			strconv.Itoa(p.Stock),
			formatTime(p.CreatedAt),
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.flush()
}

// WriteOrders streams the ledger denormalized to one row per order line.
func WriteOrders(w io.Writer, s store.State) error {
	streamer := newCSVStreamer(w)
	header := []string{"order_id", "created_at", "cashier_id", "product_id", "product_name", "unit_price", "qty", "line_total", "order_total"}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, o := range s.Orders {
		for _, line := range o.Items {
			row := []string{
				o.ID,
				formatTime(o.CreatedAt),
				o.CashierID,
				line.ProductID,
				line.Name,
				formatDecimal(line.UnitPrice),
				strconv.Itoa(line.Qty),
				formatDecimal(float64(line.Qty) * line.UnitPrice),
				formatDecimal(o.Total),
			}
			if err := streamer.writeRow(row); err != nil {
				return err
			}
		}
	}
	return streamer.flush()
}

// WritePurchaseOrders streams the purchase order list, one row per order.
func WritePurchaseOrders(w io.Writer, s store.State) error {
	streamer := newCSVStreamer(w)
	header := []string{"id", "supplier_id", "product_id", "qty", "unit_cost", "status", "source", "created_at", "received_at", "created_by"}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, po := range s.PurchaseOrders {
		receivedAt := ""
		if po.ReceivedAt != nil {
			receivedAt = formatTime(*po.ReceivedAt)
		}
		row := []string{
			po.ID,
			po.SupplierID,
			po.ProductID,
			strconv.Itoa(po.Qty),
			formatDecimal(po.UnitCost),
			string(po.Status),
			string(po.Source),
			formatTime(po.CreatedAt),
			receivedAt,
			po.CreatedBy,
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.flush()
}

func formatDecimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
