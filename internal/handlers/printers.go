package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MySagra/mycassa/internal/escpos"
	"github.com/MySagra/mycassa/internal/printers"
	"github.com/MySagra/mycassa/internal/receipt"
	"github.com/MySagra/mycassa/internal/validation"
)

func getPrintersHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		targets, err := cfg.Registry.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		if targets == nil {
			targets = []printers.Target{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "printers": targets})
	}
}

type savePrintersRequest struct {
	Printers []printers.Target `json:"printers"`
}

// savePrintersHandler validates every submitted target before touching
// the registry file; one invalid target blocks only the save, reported
// with its position and reason.
func savePrintersHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req savePrintersRequest
		if err := validation.Bind(c, &req); err != nil {
			return
		}

		if errs := printers.ValidateAll(req.Printers); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errs[0].Error()})
			return
		}

		if err := cfg.Registry.Save(req.Printers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "printer configuration saved"})
	}
}

type testPrinterRequest struct {
	Host string `json:"ip"`
	Port int    `json:"port"`
}

// testPrinterHandler sends a short test page to an ad-hoc address so an
// operator can verify a printer before saving it.
func testPrinterHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testPrinterRequest
		if err := validation.Bind(c, &req); err != nil {
			return
		}
		if req.Host == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "printer address missing"})
			return
		}
		if req.Port == 0 {
			req.Port = 9100
		}

		settings := cfg.Settings.Current()
		encoder := escpos.NewEncoder(settings.Encoding, settings.Codepage, settings.ExtraFeeds)
		payload := encoder.Encode(testPageLines(req.Host, req.Port, settings.ReceiptWidth), true)

		res := cfg.Sender.Send(printers.Job{
			Target:  printers.Target{Name: "test", Host: req.Host, Port: req.Port, Enabled: true},
			Label:   "TEST",
			Payload: payload,
		})
		if !res.OK {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": res.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "test page sent"})
	}
}

func testPageLines(host string, port, width int) []receipt.StyledLine {
	sep := strings.Repeat("=", width)
	return []receipt.StyledLine{
		receipt.Line(sep, receipt.StyleNormal),
		receipt.Line("TEST STAMPANTE", receipt.StyleDoubleHeight),
		receipt.Line(sep, receipt.StyleNormal),
		receipt.Line("", receipt.StyleNormal),
		receipt.Line(fmt.Sprintf("IP: %s:%d", host, port), receipt.StyleNormal),
		receipt.Line(time.Now().Format("Data: 02/01/2006 15:04"), receipt.StyleNormal),
		receipt.Line("", receipt.StyleNormal),
		receipt.Line("Se vedi questo messaggio,", receipt.StyleNormal),
		receipt.Line("la stampante funziona!", receipt.StyleDoubleHeight),
		receipt.Line("", receipt.StyleNormal),
		receipt.Line(sep, receipt.StyleNormal),
	}
}
