package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/MySagra/mycassa/internal/catalog"
	"github.com/MySagra/mycassa/internal/escpos"
	"github.com/MySagra/mycassa/internal/metrics"
	"github.com/MySagra/mycassa/internal/order"
	"github.com/MySagra/mycassa/internal/printers"
	"github.com/MySagra/mycassa/internal/receipt"
	"github.com/MySagra/mycassa/internal/validation"
)

// checkoutHandler turns a cart into receipts: the order is confirmed
// upstream first, then per-category and aggregate receipts are composed,
// bundled as HTML, and optionally dispatched to the printers.
func checkoutHandler(cfg Config, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.CheckoutRequest
		if err := validation.Bind(c, &req); err != nil {
			metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
			return
		}
		req.Normalize()
		if err := validation.Check(c, v, &req); err != nil {
			metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
			return
		}

		correlationID := uuid.NewString()
		logger := log.WithField("correlation_id", correlationID)

		cart := toCartItems(req.Cart)
		summary := order.Aggregate(cart)

		// The remote service must accept the order before anything is
		// composed or printed.
		orderID, err := cfg.Catalog.CreateOrder(buildOrderRequest(req))
		if err != nil {
			logger.WithError(err).Error("order confirmation failed")
			metrics.OrdersTotal.WithLabelValues("upstream_failed").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":    false,
				"error": fmt.Sprintf("order confirmation failed: %v", err),
			})
			return
		}
		orderCode := fmt.Sprintf("ORDINE N° %d", orderID)

		settings := cfg.Settings.Current()
		currency := req.Currency
		if currency == "" {
			currency = settings.Currency
		}
		composer := receipt.NewComposer(settings.ReceiptWidth, currency, settings.VenueHeader)
		meta := receipt.Meta{
			OrderCode: orderCode,
			Table:     req.Table,
			Customer:  req.Customer,
			Payment:   req.Payment,
		}

		docs := make([]receipt.Document, 0, len(summary.Groups)+1)
		for _, g := range summary.Groups {
			docs = append(docs, composer.Compose(g.Category, g.Items, meta))
		}
		aggregate := composer.Compose(receipt.AggregateCategory, summary.AllItems, meta)

		zipBundle, err := buildHTMLBundle(composer, summary, meta, aggregate)
		if err != nil {
			logger.WithError(err).Error("receipt bundle failed")
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}

		var results []printers.Result
		var dispatchErrors []string
		if req.AutoPrint {
			results, dispatchErrors = dispatchReceipts(cfg, settings.Encoding, settings.Codepage,
				settings.ExtraFeeds, settings.PrinterHost, settings.PrinterPort, docs, aggregate)
		}

		logger.WithFields(log.Fields{
			"order_id":   orderID,
			"categories": len(summary.Groups),
			"printed":    len(results),
			"failures":   len(dispatchErrors),
		}).Info("checkout completed")
		metrics.OrdersTotal.WithLabelValues("completed").Inc()

		total, _ := summary.GrandTotal.Float64()
		c.JSON(http.StatusOK, gin.H{
			"ok":              true,
			"zip_hex":         hex.EncodeToString(zipBundle),
			"totale_generale": total,
			"codice_ordine":   orderID,
			"correlation_id":  correlationID,
			"stampe":          results,
			"errori":          dispatchErrors,
		})
	}
}

func toCartItems(in []validation.CheckoutItem) []order.CartItem {
	out := make([]order.CartItem, 0, len(in))
	for _, it := range in {
		out = append(out, order.CartItem{
			Category: it.Category,
			Name:     it.Name,
			Qty:      it.Qty,
			Price:    decimal.NewFromFloat(it.Price),
			Adds:     it.Adds,
			Removes:  it.Removes,
		})
	}
	return out
}

// buildOrderRequest maps the cart to the minimal submission format the
// remote service accepts: table number plus food references.
func buildOrderRequest(req validation.CheckoutRequest) catalog.OrderRequest {
	table, err := strconv.Atoi(req.Table)
	if err != nil {
		table = 0
	}
	out := catalog.OrderRequest{Table: table, Customer: req.Customer}
	for _, it := range req.Cart {
		if it.FoodID <= 0 || it.Qty < 1 {
			continue
		}
		out.FoodsOrdered = append(out.FoodsOrdered, catalog.OrderItemRef{
			FoodID:   it.FoodID,
			Quantity: it.Qty,
		})
	}
	return out
}

// buildHTMLBundle zips one printable HTML receipt per category plus the
// aggregate receipt.
func buildHTMLBundle(composer *receipt.Composer, summary order.Summary, meta receipt.Meta, aggregate receipt.Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, g := range summary.Groups {
		name := "scontrino_" + strings.ReplaceAll(g.Category, " ", "_") + ".html"
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("bundle receipt %s: %w", g.Category, err)
		}
		if _, err := w.Write([]byte(composer.RenderHTML(g.Category, g.Items, meta, g.Subtotal))); err != nil {
			return nil, fmt.Errorf("bundle receipt %s: %w", g.Category, err)
		}
	}

	w, err := zw.Create("scontrino_TOTALE.html")
	if err != nil {
		return nil, fmt.Errorf("bundle aggregate receipt: %w", err)
	}
	if _, err := w.Write([]byte(composer.RenderHTML(aggregate.Category, summary.AllItems, meta, aggregate.Subtotal))); err != nil {
		return nil, fmt.Errorf("bundle aggregate receipt: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close receipt bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// dispatchReceipts encodes every receipt and sends it to the printers
// serving its category; the aggregate receipt goes to the default
// station printer. Categories without a registry entry fall back to the
// default printer as well.
func dispatchReceipts(cfg Config, encodingName string, codepage, extraFeeds int,
	defaultHost string, defaultPort int, docs []receipt.Document, aggregate receipt.Document) ([]printers.Result, []string) {

	encoder := escpos.NewEncoder(encodingName, codepage, extraFeeds)
	defaultTarget := printers.Target{
		Name:    "cassa",
		Host:    defaultHost,
		Port:    defaultPort,
		Enabled: true,
	}

	var jobs []printers.Job
	for _, doc := range docs {
		payload := encoder.Encode(doc.Lines, true)
		metrics.ReceiptBytes.Observe(float64(len(payload)))

		targets, err := cfg.Registry.ForCategory(doc.Category)
		if err != nil {
			log.WithError(err).Warn("printer registry unreadable, using default printer")
		}
		if len(targets) == 0 {
			targets = []printers.Target{defaultTarget}
		}
		for _, t := range targets {
			jobs = append(jobs, printers.Job{Target: t, Label: doc.Category, Payload: payload})
		}
	}

	payload := encoder.Encode(aggregate.Lines, true)
	metrics.ReceiptBytes.Observe(float64(len(payload)))
	jobs = append(jobs, printers.Job{Target: defaultTarget, Label: "TOTALE", Payload: payload})

	results := cfg.Sender.SendAll(jobs)
	var errs []string
	for _, r := range results {
		if !r.OK {
			errs = append(errs, r.Message)
		}
	}
	return results, errs
}
