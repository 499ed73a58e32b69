package scraper

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Selector strategies in priority order; the first one that resolves wins.
// The DMS vendor renames ids between releases, so exact field names come
// first and looser matches follow.
var usernameSelectors = []string{
	`input[name="username"]`,
	`input[type="email"]`,
	`input[id*="user" i]`,
	`input[placeholder*="user" i]`,
	`input[type="text"]`,
}

var passwordSelectors = []string{
	`input[name="password"]`,
	`input[type="password"]`,
	`input[id*="pass" i]`,
	`input[placeholder*="pass" i]`,
}

// signedInSelectors are markers that only render for an authenticated
// session. The login helper requires one before reporting success instead
// of trusting that a navigation happened.
var signedInSelectors = []string{
	`nav`,
	`[class*="dashboard" i]`,
	`[id*="dashboard" i]`,
	`a[href*="logout" i]`,
	`[class*="user-menu" i]`,
}

const (
	loginFieldWait       = 10 * time.Second
	submitNavigationWait = 8 * time.Second
	signedInWait         = 10 * time.Second
)

// login authenticates the page against the DMS login form. Errors name the
// stage that failed: missing fields, an unsubmittable form and a failed
// post-login check each point at different remediations.
func login(page *rod.Page, loginURL, username, password string) error {
	if err := page.Timeout(30 * time.Second).Navigate(loginURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	if err := page.Timeout(30 * time.Second).WaitLoad(); err != nil {
		return fmt.Errorf("login page did not finish loading: %w", err)
	}

	userEl, err := findFirst(page, usernameSelectors, loginFieldWait)
	if err != nil {
		return fmt.Errorf("login fields not found: no username input matched: %w", err)
	}
	passEl, err := findFirst(page, passwordSelectors, loginFieldWait)
	if err != nil {
		return fmt.Errorf("login fields not found: no password input matched: %w", err)
	}

	if err := fillInput(userEl, username); err != nil {
		return fmt.Errorf("failed to enter username: %w", err)
	}
	if err := fillInput(passEl, password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}

	// Primary submission: confirm from the keyboard
	if err := passEl.Type(input.Enter); err != nil {
		log.Printf("[SCRAPER] keyboard submit failed: %v", err)
	}
	if waitForNavigation(page, loginURL, submitNavigationWait) {
		return verifySignedIn(page)
	}

	// Fallback: locate and click a submit-labelled control
	log.Printf("[SCRAPER] keyboard submit produced no navigation, trying submit button")
	if submitEl := findSubmitControl(page); submitEl != nil {
		if err := submitEl.Click(proto.InputMouseButtonLeft, 1); err != nil {
			log.Printf("[SCRAPER] submit button click failed: %v", err)
		}
		if waitForNavigation(page, loginURL, submitNavigationWait) {
			return verifySignedIn(page)
		}
	}

	return fmt.Errorf("login form not submittable: neither keyboard nor button submission left the login page")
}

// findFirst resolves the first matching selector within the wait budget,
// re-scanning the list in priority order until the deadline.
func findFirst(page *rod.Page, selectors []string, budget time.Duration) (*rod.Element, error) {
	deadline := time.Now().Add(budget)
	for {
		for _, sel := range selectors {
			el, err := page.Timeout(500 * time.Millisecond).Element(sel)
			if err == nil && el != nil {
				return el, nil
			}
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("no selector matched within %s", budget)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func fillInput(el *rod.Element, value string) error {
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	if err := el.SelectAllText(); err == nil {
		_ = el.Type(input.Backspace)
	}
	return el.Input(value)
}

// findSubmitControl looks for a clickable submit control, preferring typed
// submit inputs over text-matched buttons.
func findSubmitControl(page *rod.Page) *rod.Element {
	for _, sel := range []string{`button[type="submit"]`, `input[type="submit"]`} {
		if el, err := page.Timeout(time.Second).Element(sel); err == nil {
			return el
		}
	}
	if el, err := page.Timeout(2 * time.Second).ElementR("button, a", `(?i)^\s*(log\s*in|sign\s*in|submit)\s*$`); err == nil {
		return el
	}
	return nil
}

// waitForNavigation polls until the page URL leaves the login page. The DMS
// is a client-side-routed app, so this watches the URL rather than a load
// event.
func waitForNavigation(page *rod.Page, fromURL string, timeout time.Duration) bool {
	from := urlBase(fromURL)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		info, err := page.Info()
		if err == nil && info.URL != "" && urlBase(info.URL) != from {
			return true
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}

// urlBase strips query and fragment so a hash-only change on the login page
// does not count as a navigation.
func urlBase(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRight(u, "/")
}

// verifySignedIn requires a signed-in marker after the navigation settles.
// A navigation alone can be a redirect back to a re-skinned login form.
func verifySignedIn(page *rod.Page) error {
	if _, err := findFirst(page, signedInSelectors, signedInWait); err != nil {
		return fmt.Errorf("login verification failed: no signed-in marker appeared: %w", err)
	}
	return nil
}
