package rfp

import (
	"net/url"
	"strings"
)

// Endpoints locates the RFP application. The zero value is not usable;
// start from DefaultEndpoints.
type Endpoints struct {
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	SystemID string `mapstructure:"system_id" yaml:"system_id"`
}

// DefaultEndpoints points at the production SAP system.
var DefaultEndpoints = Endpoints{
	BaseURL:  "https://insidemit-apps.mit.edu/apps/rfp",
	SystemID: "PS1",
}

func (e Endpoints) entry(action string, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	q.Set("sapSystemId", e.SystemID)
	return strings.TrimRight(e.BaseURL, "/") + "/" + action + "?" + q.Encode()
}

// Inbox is the entry URL of the personal inbox.
func (e Endpoints) Inbox() string {
	return e.entry("InboxEntry.action", url.Values{"gatewayType": {"admin"}})
}

// CreateReimbursement starts a reimbursement at the payee search.
func (e Endpoints) CreateReimbursement() string {
	return e.entry("SelectPayeeReimbursementEntry.action", nil)
}

// CreatePayment starts a payment at the payee search.
func (e Endpoints) CreatePayment() string {
	return e.entry("SelectPayeePaymentEntry.action", nil)
}

// Search is the entry URL of the record search.
func (e Endpoints) Search() string {
	return e.entry("SearchEntry.action", nil)
}

const helpBase = "http://insidemit.mit.edu/help-apps/"

var (
	inboxHelp         = []string{helpBase + "rfp_inbox.shtml"}
	payeeHelp         = []string{helpBase + "rfp_select_payee.shtml"}
	rfpHelp           = []string{helpBase + "rfp_reimbursement.shtml", helpBase + "rfp_payment.shtml"}
	attachReceiptHelp = []string{helpBase + "rfp_reimbursement.shtml"}
	sendToHelp        = []string{helpBase + "rfp_send_to.shtml"}
	searchHelp        = []string{helpBase + "rfp_search.shtml"}
)

func helpURLs(urls []string) []string {
	return append([]string(nil), urls...)
}
