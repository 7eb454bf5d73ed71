package domain

// Response is a decoded gateway response: nested maps, lists of repeated
// elements and string leaves.
type Response map[string]any

// Node walks path and returns the nested element, or nil.
func (r Response) Node(path ...string) Response {
	cur := map[string]any(r)
	for _, key := range path {
		if cur == nil {
			return nil
		}
		next, ok := cur[key]
		if !ok {
			return nil
		}
		if list, ok := next.([]any); ok && len(list) > 0 {
			next = list[0]
		}
		switch m := next.(type) {
		case map[string]any:
			cur = m
		case Response:
			cur = m
		default:
			return nil
		}
	}
	return Response(cur)
}

// String returns the text at path, or "" when absent.
func (r Response) String(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	parent := r.Node(path[:len(path)-1]...)
	if parent == nil {
		return ""
	}
	v := parent[path[len(path)-1]]
	if list, ok := v.([]any); ok && len(list) > 0 {
		v = list[0]
	}
	s, _ := v.(string)
	return s
}

// ResultCode is the gateway result code carried by every response.
func (r Response) ResultCode() string {
	return r.String("result", "code")
}

// ResultMessage prefers the long message over the short one.
func (r Response) ResultMessage() string {
	if msg := r.String("result", "longMessage"); msg != "" {
		return msg
	}
	return r.String("result", "shortMessage")
}

// TransactionResult carries the transaction id of an operation.
type TransactionResult struct {
	ID  string   `json:"id"`
	Raw Response `json:"raw"`
}

// WalletResult always reports the wallet id; Wallet holds the remote wallet
// node when the gateway returns one.
type WalletResult struct {
	WalletID string   `json:"walletId"`
	Wallet   Response `json:"wallet,omitempty"`
	Raw      Response `json:"raw"`
}

// SuccessResult reports a plain success flag.
type SuccessResult struct {
	Success bool     `json:"success"`
	Raw     Response `json:"raw"`
}

// ValidationResult reports a card validation (authorization then reset).
type ValidationResult struct {
	Success       bool               `json:"success"`
	Authorization *TransactionResult `json:"authorization"`
	Reset         *TransactionResult `json:"reset"`
	Reason        string             `json:"reason,omitempty"`
}

// WebPaymentResult carries the hosted payment page session.
type WebPaymentResult struct {
	Token       string   `json:"token"`
	RedirectURL string   `json:"redirectURL"`
	Raw         Response `json:"raw"`
}
