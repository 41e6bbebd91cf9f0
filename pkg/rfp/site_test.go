package rfp

import (
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

// fakeSite scripts the RFP application on top of fakeDriver. Each load*
// method replaces the document the way a page navigation would.
type fakeSite struct {
	*fakeDriver
	ep   Endpoints
	mode string

	payees         []string
	recipients     []string
	stateField     bool
	saveErrors     []string
	overlayBroken  bool
	attachLandView bool

	number     string
	shownAs    string
	viewItems  []LineItem
	history    []string
	searchHits []string
	inbox      []string
}

func newFakeSite() *fakeSite {
	s := &fakeSite{
		fakeDriver: newFakeDriver(),
		ep:         DefaultEndpoints,
		payees:     []string{"Doe, Jane (jdoe)"},
		recipients: []string{"Approver, Amy (amy,VPF)"},
		stateField: true,
		number:     "2000123456",
		viewItems: []LineItem{
			{DateOfService: "01/02/2024", GLAccount: "421000", CostObject: "1234567", Amount: "100.00", Explanation: "Taxi"},
		},
		history: []string{"01/02/2024", "10:00", "Created", "01/03/2024", "11:30", "Sent to Amy"},
	}
	s.routes[s.ep.CreateReimbursement()] = func() { s.loadPayeeSearch("Reimbursement") }
	s.routes[s.ep.CreatePayment()] = func() { s.loadPayeeSearch("Payment") }
	s.routes[s.ep.Search()] = s.loadSearch
	s.routes[s.ep.Inbox()] = s.loadInbox
	return s
}

func (s *fakeSite) index() int {
	if s.mode == "Payment" {
		return 1
	}
	return 2
}

func (s *fakeSite) loadPayeeSearch(mode string) {
	s.mode = mode
	s.load("Select Payee")
	s.radio(payeeTypeGroup, payeeTypeMIT, payeeTypeMIT, payeeTypeOther)
	s.textbox("#payeeName", "")
	s.button("#searchButton", func() {
		for _, p := range s.payees {
			s.appendTo(browser.CSS(payeeResults), &fakeElement{text: p, onClick: s.loadRequest})
		}
	})
}

func (s *fakeSite) loadRequest() {
	s.load("Create RFP " + s.mode)
	i := s.index()
	s.textbox("#payee", "Doe, Jane")
	s.selectBox("#coCode", "CUR", "CUR", "CUR", "LL", "LL")
	s.textbox("#rfpName", "")
	s.selectBox(fmt.Sprintf("#country%d", i), "", "US", "United States", "CA", "Canada")
	s.textbox(fmt.Sprintf("#address%d", i), "")
	s.textbox(fmt.Sprintf("#city%d", i), "")
	s.textbox(fmt.Sprintf("#zip%d", i), "")
	if s.stateField {
		s.selectBox(fmt.Sprintf("#region%d", i), "", "MA", "Massachusetts", "NY", "New York")
	}
	s.radio(citizenGroup, "", "CITIZEN", "ALIEN")
	s.radio(mailToMITGroup, "true", "true", "false")
	s.checkbox("#holdCheck", false)
	s.textbox("#bldg-rm", "")
	s.addLineItem()
	s.button("#addLine", s.addLineItem)
	s.textbox("#messageForAP", "")
	s.button(".saveAction", func() {
		if len(s.saveErrors) > 0 {
			for _, msg := range s.saveErrors {
				s.appendTo(browser.CSS(errorSelector), &fakeElement{text: msg})
			}
			return
		}
		s.loadEdit(!s.overlayBroken)
	})
}

func (s *fakeSite) addLineItem() {
	n := len(s.elems[browser.CSS(".lineItem").String()])
	s.appendTo(browser.CSS(".lineItem"), &fakeElement{})
	for _, name := range []string{"serviceDate", "glAccount", "costObject", "amount", "description"} {
		s.textbox(lineField(name, n), "")
	}
}

func (s *fakeSite) loadEdit(overlay bool) {
	s.load("Edit RFP " + s.mode)
	s.dataList("RFP Number", s.number)
	s.dataList("Payee", "Doe, Jane")
	s.dataList("Charge to", "CUR")
	s.textbox("#rfpName", "Conference travel")
	upload := &fakeElement{hidden: !overlay}
	s.add(browser.CSS("#doUpload"), upload)
	s.add(browser.CSS("#upload"), &fakeElement{})
	s.button(".attachReceipts", func() { upload.hidden = false })
	s.add(browser.CSS(".ui-dialog button"),
		&fakeElement{name: "Cancel", text: "Cancel", onClick: s.closeOverlay},
		&fakeElement{name: "Attach", text: " Attach ", onClick: s.closeOverlay})
	s.button(".sendToAction", s.loadSendTo)
	s.button(".saveAction", nil)
	s.button(".changePayeeAction", func() { s.loadPayeeSearch(s.mode) })
}

func (s *fakeSite) closeOverlay() {
	if s.attachLandView {
		s.loadView()
		return
	}
	s.loadEdit(false)
}

func (s *fakeSite) loadSendTo() {
	s.load("Send To")
	s.textbox("#recipientName", "")
	s.button(".searchForRecipient", func() {
		for _, r := range s.recipients {
			s.appendTo(browser.CSS(recipientResults), &fakeElement{text: r})
		}
	})
	s.textbox("#recipientNote", "")
	s.button(".sendToAction", s.loadView)
	s.button("a[href='ReturnToRfp.action']", func() { s.loadEdit(false) })
}

func (s *fakeSite) loadView() {
	shown := s.number
	if s.shownAs != "" {
		shown = s.shownAs
	}
	s.load("Display RFP " + shown)
	s.dataList("RFP Number", shown)
	s.dataList("Inbox", "Approver, Amy")
	s.dataList("Payee", "Doe, Jane")
	s.dataList("Company Code", "CUR")
	s.dataList("Name of RFP", "Conference travel")
	s.dataList("Type of RFP", "Reimbursement")
	s.dataList("Payment Method", "Check")
	s.dataList("City", "Cambridge")
	s.dataList("Country", "United States")
	s.add(browser.XPath("//h3[normalize-space(.)='Note to Central Office']/following-sibling::div[@class='sectionContainer'][1]"),
		&fakeElement{text: "Receipts attached"})
	for _, li := range s.viewItems {
		s.appendTo(browser.CSS(".lineItem"), &fakeElement{children: map[string][]*fakeElement{
			browser.CSS("td").String():               cells(s.fakeDriver, li.DateOfService, li.GLAccount, li.CostObject, li.Amount),
			browser.CSS("div.data.indent1").String(): cells(s.fakeDriver, li.Explanation),
		}})
	}
	s.add(browser.CSS(".topHeadersTable"),
		&fakeElement{children: map[string][]*fakeElement{browser.CSS("td").String(): cells(s.fakeDriver, "header")}},
		&fakeElement{children: map[string][]*fakeElement{browser.CSS("td").String(): cells(s.fakeDriver, s.history...)}})
	upload := &fakeElement{hidden: true}
	s.add(browser.CSS("#doUpload"), upload)
	s.add(browser.CSS("#upload"), &fakeElement{})
	s.button(".attachReceipts", func() { upload.hidden = false })
	s.add(browser.CSS(".ui-dialog button"),
		&fakeElement{name: "Cancel", text: "Cancel", onClick: s.loadView},
		&fakeElement{name: "Attach", text: "Attach", onClick: s.loadView})
}

func (s *fakeSite) loadSearch() {
	s.load("Search RFP")
	s.checkbox("#parked", true)
	s.checkbox("#posted", true)
	s.checkbox("#deleted", false)
	s.selectBox("#coCode", "CUR", "CUR", "CUR", "LL", "LL")
	for _, css := range []string{"#rfpNumber", "#creationStartDate", "#creationEndDate", "#payee", "#filingLabel", "#costObject", "#glAccount"} {
		s.textbox(css, "")
	}
	s.button("#searchButton", func() {
		if len(s.searchHits) == 1 {
			s.loadView()
			return
		}
		for _, hit := range s.searchHits {
			s.appendTo(browser.CSS(searchResults), &fakeElement{text: hit, onClick: s.loadView})
			s.add(rowSelector(hit), cells(s.fakeDriver,
				hit, "01/02/2024", "Doe, Jane", "jdoe", "Travel "+hit, "Posted", "1234567", "100.00")...)
		}
	})
}

func (s *fakeSite) loadInbox() {
	s.load("RFP Inbox")
	for _, n := range s.inbox {
		s.appendTo(browser.CSS("td.data > a"), &fakeElement{text: n})
		s.add(inboxRowSelector(n, "a"), &fakeElement{onClick: func() { s.loadEdit(false) }})
		s.add(inboxRowSelector(n, "img"), &fakeElement{attrs: map[string]string{"alt": "SENT ON"}})
		s.add(inboxRowSelector(n, "input[@type='checkbox']"), &fakeElement{toggles: true})
		s.add(rowSelector(n), cells(s.fakeDriver,
			"", n, "Yes", "", "01/02/2024", "Doe, Jane", "jdoe", "1234567", "100.00", "n/a")...)
	}
	s.button(".deleteButton", nil)
}
