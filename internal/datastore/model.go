// model.go this code defines the data model for the application
package datastore

import "time"

// Spot represents a single activator spot as reported by the POTA network.
// The whole spots table is replaced on every refresh cycle; derived fields
// are computed once at enrichment time and never updated in place.
type Spot struct {
	ID           uint      `gorm:"primaryKey" json:"spotId"`
	Activator    string    `gorm:"index:idx_spots_activator" json:"activator"`
	Frequency    string    `json:"frequency"` // kHz, kept as text as received
	Mode         string    `gorm:"size:15" json:"mode"`
	Reference    string    `gorm:"size:15;index:idx_spots_reference" json:"reference"`
	ParkName     string    `json:"parkName"`
	SpotTime     time.Time `json:"spotTime"`
	Spotter      string    `json:"spotter"`
	Comments     string    `json:"comments"`
	Source       string    `json:"source"`
	Invalid      bool      `json:"invalid"`
	Name         string    `json:"name"`
	LocationDesc string    `json:"locationDesc"`
	Grid4        string    `gorm:"size:4" json:"grid4"`
	Grid6        string    `gorm:"size:6" json:"grid6"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Count        int       `json:"count"`
	Expire       int       `json:"expire"`

	// Derived fields, set by the enricher before the spot is stored.
	ParkHunts   int    `json:"parkHunts"`   // snapshot of Park.Hunts
	OpHunts     int    `json:"opHunts"`     // logged QSO count with this activator
	Hunted      bool   `json:"hunted"`      // activator+park already worked today
	HuntedBands string `json:"huntedBands"` // comma-joined band names worked today
	IsQRT       bool   `gorm:"column:is_qrt" json:"isQrt"` // activator reported off air
}

// QSO represents one logged contact. Immutable once created except for the
// hunt confirmation flag.
type QSO struct {
	ID         uint      `gorm:"primaryKey" json:"qsoId"`
	Call       string    `gorm:"index:idx_qsos_call" json:"call"`
	RstSent    string    `json:"rst_sent"`
	RstRecv    string    `json:"rst_recv"`
	Freq       string    `json:"freq"` // kHz, text to match the spot column
	FreqRx     string    `json:"freq_rx"`
	Mode       string    `gorm:"size:15" json:"mode"`
	Comment    string    `json:"comment"`
	QSODate    time.Time `gorm:"column:qso_date" json:"qso_date"`
	TimeOn     time.Time `gorm:"index:idx_qsos_time_on" json:"time_on"`
	TxPwr      int       `json:"tx_pwr"`
	RxPwr      int       `json:"rx_pwr"`
	Gridsquare string    `gorm:"size:6" json:"gridsquare"`
	State      string    `json:"state"`
	Sig        string    `json:"sig"`      // special interest group, "POTA"
	SigInfo    string    `gorm:"index:idx_qsos_sig_info" json:"sig_info"` // park reference
	FromApp    bool      `json:"from_app"` // logged via this app vs imported
	CnfmHunt   bool      `json:"cnfm_hunt"`
}

func (QSO) TableName() string { return "qsos" }

// Park holds POTA park metadata plus the operator's running hunt counter.
// Rows are created lazily on first reference; Hunts may also be bulk-set
// from imported hunter statistics.
type Park struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	Reference           string  `gorm:"size:15;uniqueIndex" json:"reference"`
	Name                string  `json:"name"`
	Grid4               string  `gorm:"size:4" json:"grid4"`
	Grid6               string  `gorm:"size:6" json:"grid6"`
	Active              bool    `json:"active"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Hunts               int     `json:"hunts"`
	ParkComments        string  `json:"parkComments"`
	Accessibility       string  `json:"accessibility"`
	Sensitivity         string  `json:"sensitivity"`
	AccessMethods       string  `json:"accessMethods"`
	ActivationMethods   string  `json:"activationMethods"`
	Agencies            string  `json:"agencies"`
	AgencyURLs          string  `json:"agencyURLs"`
	ParkURLs            string  `json:"parkURLs"`
	ParktypeID          int     `json:"parktypeId"`
	ParktypeDesc        string  `json:"parktypeDesc"`
	LocationDesc        string  `json:"locationDesc"`
	LocationName        string  `json:"locationName"`
	EntityID            int     `json:"entityId"`
	EntityName          string  `json:"entityName"`
	ReferencePrefix     string  `json:"referencePrefix"`
	EntityDeleted       bool    `json:"entityDeleted"`
	FirstActivator      string  `json:"firstActivator"`
	FirstActivationDate string  `json:"firstActivationDate"`
	Website             string  `json:"website"`
}

// Activator aggregates POTA statistics per base callsign, upserted from the
// POTA stats endpoint.
type Activator struct {
	ID          uint      `gorm:"primaryKey" json:"activatorId"`
	Callsign    string    `gorm:"uniqueIndex" json:"callsign"` // base callsign
	Name        string    `json:"name"`
	QTH         string    `json:"qth"`
	Gravatar    string    `json:"gravatar"`
	Activations int       `json:"activations"`
	Parks       int       `json:"parks"`
	QSOs        int       `json:"qsos"`
	HunterParks int       `json:"hunterParks"`
	HunterQSOs  int       `json:"hunterQsos"`
	UpdatedAt   time.Time `json:"updated"`
}

// SpotComment is one comment line attached to an activation, fetched per
// activator/park pair. The pair's rows are replaced on every fetch.
type SpotComment struct {
	ID        uint      `gorm:"primaryKey" json:"spotId"`
	Activator string    `gorm:"index:idx_comments_act_park" json:"activator"`
	Park      string    `gorm:"size:15;index:idx_comments_act_park" json:"park"`
	SpotTime  time.Time `json:"spotTime"`
	Spotter   string    `json:"spotter"`
	Frequency string    `json:"frequency"`
	Mode      string    `gorm:"size:15" json:"mode"`
	Band      string    `json:"band"`
	Source    string    `json:"source"`
	Comments  string    `json:"comments"`
}

func (SpotComment) TableName() string { return "comments" }

// UserConfig is the operator's persisted station configuration. Exactly one
// row exists; it is created with defaults on first startup.
type UserConfig struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MyCall     string `json:"my_call"`
	MyGrid6    string `gorm:"size:6" json:"my_grid6"`
	DefaultPwr int    `json:"default_pwr"`
	FlrHost    string `json:"flr_host"` // fldigi integration
	FlrPort    int    `json:"flr_port"`
	AdifHost   string `json:"adif_host"` // ADIF log host integration
	AdifPort   int    `json:"adif_port"`
}

// SchemaVersion is a single-row marker holding the schema version token the
// running code expects. It is rewritten unconditionally at startup.
type SchemaVersion struct {
	ID      uint   `gorm:"primaryKey"`
	Version string `gorm:"size:32;not null"`
}
