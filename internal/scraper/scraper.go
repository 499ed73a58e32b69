package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"dealersync-backend/internal/inventory/domain"
	"dealersync-backend/pkg/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Service runs the inventory scrape as a single sequential job: one browser,
// one page, steps in order. Callers are expected to serialize invocations;
// two concurrent logins against the same DMS account invalidate each other.
type Service struct {
	cfg    *config.Config
	schema RowSchema
}

// NewService creates a scraper bound to the DMS settings in cfg
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		schema: DefaultRowSchema(),
	}
}

// Run authenticates, locates the inventory grid and parses its rows.
// An empty slice with a nil error means the grid was found but yielded no
// extractable rows; the caller decides how loudly to report that.
func (s *Service) Run(ctx context.Context) ([]*domain.Vehicle, error) {
	if s.cfg.DMSLoginURL == "" || s.cfg.DMSUsername == "" || s.cfg.DMSPassword == "" {
		return nil, fmt.Errorf("scraper is not configured: set DMS_LOGIN_URL, DMS_USERNAME and DMS_PASSWORD")
	}

	l := launcher.New().
		Headless(s.cfg.ScraperHeadless).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("window-size", "1920,1080")
	if s.cfg.ChromePath != "" {
		l = l.Bin(s.cfg.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	// Cleanup runs on every exit path, including panics in rod helpers
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("[SCRAPER] browser close failed: %v", err)
		}
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.Printf("[SCRAPER] logging in at %s", s.cfg.DMSLoginURL)
	if err := login(page, s.cfg.DMSLoginURL, s.cfg.DMSUsername, s.cfg.DMSPassword); err != nil {
		return nil, err
	}

	s.navigateToInventory(page)

	candidate, err := discoverTable(ctx, pageCandidates(page), DiscoveryOptions{})
	if err != nil {
		return nil, err
	}

	rows, err := candidate.Extract()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}

	vehicles := s.schema.ParseAll(rows)
	log.Printf("[SCRAPER] parsed %d vehicles from %d rows", len(vehicles), len(rows))
	return vehicles, nil
}

// navigateToInventory makes a best-effort move toward the inventory view:
// an exact "Inventory" nav control, then a partial "Browse Inventory" link,
// then the deep-link URL the client-side router understands. Failures here
// are non-fatal; discovery polling decides whether the content arrived.
func (s *Service) navigateToInventory(page *rod.Page) {
	if el, err := page.Timeout(5 * time.Second).ElementR("a, button, span", `(?i)^\s*inventory\s*$`); err == nil {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			log.Printf("[SCRAPER] clicked Inventory nav control")
			return
		}
	}
	if el, err := page.Timeout(3 * time.Second).ElementR("a", `(?i)browse\s+inventory`); err == nil {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			log.Printf("[SCRAPER] clicked Browse Inventory link")
			return
		}
	}
	if s.cfg.DMSInventoryURL != "" {
		log.Printf("[SCRAPER] no inventory control found, deep-linking %s", s.cfg.DMSInventoryURL)
		if err := page.Timeout(15 * time.Second).Navigate(s.cfg.DMSInventoryURL); err != nil {
			log.Printf("[SCRAPER] deep-link navigation failed: %v", err)
		}
	}
}

// pageCandidates enumerates the top-level document and every accessible
// iframe as table candidates. The lister waits briefly for at least one
// iframe each attempt since the grid usually renders inside one.
func pageCandidates(page *rod.Page) CandidateLister {
	return func(ctx context.Context) ([]TableCandidate, error) {
		var candidates []TableCandidate

		// The content occasionally renders top-level; candidate 0
		if info, err := page.Info(); err == nil {
			candidates = append(candidates, frameCandidate(page, info.URL))
		}

		if _, err := page.Timeout(2 * time.Second).Element("iframe"); err != nil {
			// No sub-document yet; the top-level candidate still counts
			return candidates, nil
		}

		iframes, err := page.Elements("iframe")
		if err != nil {
			return candidates, nil
		}
		for _, iframe := range iframes {
			origin := ""
			if src, err := iframe.Attribute("src"); err == nil && src != nil {
				origin = *src
			}
			frame, err := iframe.Frame()
			if err != nil {
				// Cross-origin frames without access cannot host parseable content
				continue
			}
			candidates = append(candidates, frameCandidate(frame, origin))
		}
		return candidates, nil
	}
}

// frameCandidate measures a document's table density and wires a deferred
// row extractor for it.
func frameCandidate(doc *rod.Page, origin string) TableCandidate {
	cellCount := 0
	if cells, err := doc.Timeout(2 * time.Second).Elements("table td"); err == nil {
		cellCount = len(cells)
	}

	return TableCandidate{
		Origin:    origin,
		CellCount: cellCount,
		Extract: func() ([][]string, error) {
			trs, err := doc.Timeout(10 * time.Second).Elements("table tr")
			if err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(trs))
			for _, tr := range trs {
				tds, err := tr.Elements("td")
				if err != nil {
					continue
				}
				cells := make([]string, 0, len(tds))
				for _, td := range tds {
					text, err := td.Text()
					if err != nil {
						text = ""
					}
					cells = append(cells, text)
				}
				rows = append(rows, cells)
			}
			return rows, nil
		},
	}
}
