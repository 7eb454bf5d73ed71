package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	implNS = "http://impl.ws.payline.experian.com"
	objNS  = "http://obj.ws.payline.experian.com"

	// DeclinedCard is refused by the fake gateway's authorization.
	DeclinedCard = "4000000000000002"
)

var serviceOperations = map[string][]string{
	"DirectPaymentAPI": {
		"createWallet", "updateWallet", "getWallet", "disableWallet",
		"doImmediateWalletPayment", "doScheduledWalletPayment",
		"doAuthorization", "doReAuthorization", "doCapture", "doReset", "doRefund",
	},
	"WebPaymentAPI": {"doWebPayment", "getWebPaymentDetails"},
	"ExtendedAPI":   {"getTransactionDetails", "transactionsSearch"},
}

// fakePayline imitates the three SOAP services: it serves their WSDL and
// answers each action with a canned response. Wallets are kept in memory.
type fakePayline struct {
	server *httptest.Server
	user   string
	pass   string

	mu      sync.Mutex
	wallets map[string]bool
	bodies  map[string][]string
	nextTx  atomic.Int64
}

func newFakePayline(user, pass string) *fakePayline {
	f := &fakePayline{
		user:    user,
		pass:    pass,
		wallets: make(map[string]bool),
		bodies:  make(map[string][]string),
	}
	f.nextTx.Store(26101000000000)
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakePayline) close() { f.server.Close() }

// prefix is the endpoint prefix the client factory should use.
func (f *fakePayline) prefix() string { return f.server.URL + "/services/" }

// calls returns the request bodies received for action.
func (f *fakePayline) calls(action string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies[action]...)
}

func (f *fakePayline) serve(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != f.user || pass != f.pass {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	service := strings.TrimPrefix(r.URL.Path, "/services/")
	ops, known := serviceOperations[service]
	if !known {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if r.Method == http.MethodGet {
		_, _ = io.WriteString(w, wsdl(service, ops))
		return
	}

	raw, _ := io.ReadAll(r.Body)
	body := string(raw)
	action := strings.Trim(r.Header.Get("SOAPAction"), `"`)

	f.mu.Lock()
	f.bodies[action] = append(f.bodies[action], body)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = io.WriteString(w, envelope(action, f.answer(action, body)))
}

func (f *fakePayline) answer(action, body string) string {
	switch action {
	case "createWallet", "updateWallet":
		id := element(body, "walletId")
		f.mu.Lock()
		f.wallets[id] = true
		f.mu.Unlock()
		return result("02500", "Operation Successfull")
	case "getWallet":
		id := element(body, "walletId")
		f.mu.Lock()
		exists := f.wallets[id]
		f.mu.Unlock()
		if !exists {
			return result("02532", "Wallet not found")
		}
		return result("02500", "Operation Successfull") +
			fmt.Sprintf(`<impl:wallet><obj:walletId>%s</obj:walletId><obj:card><obj:number>497010XXXXXX0154</obj:number></obj:card></impl:wallet>`, id)
	case "disableWallet":
		return result("02500", "Operation Successfull")
	case "doAuthorization":
		if element(body, "number") == DeclinedCard {
			return result("01100", "Do not honor")
		}
		return result("00000", "Transaction approved") + f.transaction()
	case "doScheduledWalletPayment":
		return result("02500", "Operation Successfull") + `<impl:paymentRecordId>PR-1</impl:paymentRecordId>`
	case "doWebPayment":
		return result("00000", "Transaction approved") +
			`<impl:token>1aBcD2eFgH</impl:token><impl:redirectURL>https://homologation-webpayment.payline.com/webpayment/step2.do?reqCode=prepareStep2&amp;token=1aBcD2eFgH</impl:redirectURL>`
	case "getTransactionDetails":
		return result("00000", "Transaction approved") +
			fmt.Sprintf(`<impl:transaction><obj:id>%s</obj:id></impl:transaction>`, element(body, "transactionId"))
	}
	return result("00000", "Transaction approved") + f.transaction()
}

func (f *fakePayline) transaction() string {
	return fmt.Sprintf(`<impl:transaction><obj:id>%d</obj:id></impl:transaction>`, f.nextTx.Add(1))
}

func result(code, message string) string {
	return fmt.Sprintf(`<impl:result><obj:code>%s</obj:code><obj:shortMessage>%s</obj:shortMessage><obj:longMessage>%s</obj:longMessage></impl:result>`,
		code, message, message)
}

func envelope(action, payload string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
<soapenv:Body><impl:%[1]sResponse xmlns:impl="%[2]s" xmlns:obj="%[3]s">%[4]s</impl:%[1]sResponse></soapenv:Body>
</soapenv:Envelope>`, action, implNS, objNS, payload)
}

// element returns the text of the first element with the given local name.
func element(body, name string) string {
	re := regexp.MustCompile(`<(?:\w+:)?` + regexp.QuoteMeta(name) + `>([^<]*)<`)
	if m := re.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

func wsdl(service string, ops []string) string {
	var port, binding strings.Builder
	for _, op := range ops {
		fmt.Fprintf(&port, `<wsdl:operation name="%s"/>`, op)
		fmt.Fprintf(&binding, `<wsdl:operation name="%[1]s"><soap:operation soapAction="%[1]s"/></wsdl:operation>`, op)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/" xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
    xmlns:impl="%[1]s" targetNamespace="%[1]s">
  <wsdl:portType name="%[2]s">%[3]s</wsdl:portType>
  <wsdl:binding name="%[2]sSoapBinding" type="impl:%[2]s">%[4]s</wsdl:binding>
  <wsdl:service name="%[2]s"><wsdl:port name="%[2]s" binding="impl:%[2]sSoapBinding">
    <soap:address location="https://homologation.payline.com/V4/services/%[2]s"/>
  </wsdl:port></wsdl:service>
</wsdl:definitions>`, implNS, service, port.String(), binding.String())
}
