package mailtm

// HydraView is the pagination block of a collection response.
type HydraView struct {
	ID       string `json:"@id"`
	Type     string `json:"@type"`
	First    string `json:"hydra:first,omitempty"`
	Last     string `json:"hydra:last,omitempty"`
	Previous string `json:"hydra:previous,omitempty"`
	Next     string `json:"hydra:next,omitempty"`
}

// Domain is a mail domain accounts can be created under.
type Domain struct {
	ID        string `json:"id"`
	Domain    string `json:"domain"`
	IsActive  bool   `json:"isActive"`
	IsPrivate bool   `json:"isPrivate"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// DomainsResponse is one page of domains.
type DomainsResponse struct {
	Members    []Domain   `json:"hydra:member"`
	TotalItems int        `json:"hydra:totalItems"`
	View       *HydraView `json:"hydra:view,omitempty"`
}

// Account is a mailbox.
type Account struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	Quota      int64  `json:"quota"`
	Used       int64  `json:"used"`
	IsDisabled bool   `json:"isDisabled"`
	IsDeleted  bool   `json:"isDeleted"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Token is a bearer token issued for an account.
type Token struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Address is a sender or recipient.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Message is a message summary as returned by the inbox listing.
type Message struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"accountId"`
	MsgID          string    `json:"msgid"`
	From           Address   `json:"from"`
	To             []Address `json:"to"`
	Subject        string    `json:"subject"`
	Intro          string    `json:"intro,omitempty"`
	Seen           bool      `json:"seen"`
	IsDeleted      bool      `json:"isDeleted"`
	HasAttachments bool      `json:"hasAttachments"`
	Size           int64     `json:"size"`
	DownloadURL    string    `json:"downloadUrl"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`

	// Received is a relative rendering of CreatedAt filled in by the proxy.
	Received string `json:"received,omitempty"`
}

// MessagesResponse is one page of message summaries.
type MessagesResponse struct {
	Members    []Message  `json:"hydra:member"`
	TotalItems int        `json:"hydra:totalItems"`
	View       *HydraView `json:"hydra:view,omitempty"`
}

// Attachment describes a file attached to a message.
type Attachment struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	ContentType      string `json:"contentType"`
	Disposition      string `json:"disposition"`
	TransferEncoding string `json:"transferEncoding"`
	Related          bool   `json:"related"`
	Size             int64  `json:"size"`
	DownloadURL      string `json:"downloadUrl"`
}

// MessageDetail is a full message.
type MessageDetail struct {
	ID             string       `json:"id"`
	AccountID      string       `json:"accountId"`
	MsgID          string       `json:"msgid"`
	From           Address      `json:"from"`
	To             []Address    `json:"to"`
	CC             []string     `json:"cc"`
	BCC            []string     `json:"bcc"`
	Subject        string       `json:"subject"`
	Seen           bool         `json:"seen"`
	Flagged        bool         `json:"flagged"`
	IsDeleted      bool         `json:"isDeleted"`
	Verifications  []string     `json:"verifications"`
	Retention      bool         `json:"retention"`
	RetentionDate  string       `json:"retentionDate"`
	Text           string       `json:"text"`
	HTML           []string     `json:"html"`
	HasAttachments bool         `json:"hasAttachments"`
	Attachments    []Attachment `json:"attachments"`
	Size           int64        `json:"size"`
	DownloadURL    string       `json:"downloadUrl"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
}

// SeenResult is the response to marking a message as read.
type SeenResult struct {
	Seen bool `json:"seen"`
}

// Source is the raw RFC 822 source of a message.
type Source struct {
	ID          string `json:"id"`
	DownloadURL string `json:"downloadUrl"`
	Data        string `json:"data"`
}

// Credentials identify an account for creation and token issuance.
type Credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}
