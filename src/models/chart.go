package models

import "time"

// MChart is the immutable output of one chart calculation. It owns every
// derived sub-structure.
type MChart struct {
	ID           string           `json:"id"`
	Metadata     MChartMetadata   `json:"metadata"`
	Ayanamsa     float64          `json:"ayanamsa"`
	Lagna        MLagna           `json:"lagna"`
	Grahas       []MGrahaPosition `json:"grahas"`
	Yogas        []MYoga          `json:"yogas"`
	Dasha        MDashaSchedule   `json:"dasha"`
	Shadbala     []MShadbala      `json:"shadbala"`
	Ashtakavarga MAshtakavarga    `json:"ashtakavarga"`
	Transits     MTransitReport   `json:"transits"`
	AnnualReturn MAnnualReturn    `json:"annual_return"`
	Argala       []MArgala        `json:"argala"`
	ArgalaTotal  int              `json:"argala_total"`
	Arudha       MArudha          `json:"arudha"`
}

type MChartMetadata struct {
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Location     string     `json:"location"`
	Timezone     float64    `json:"timezone"`
	JulianDay    float64    `json:"julian_day"`
	BirthInstant time.Time  `json:"birth_instant"`
	ComputedAt   time.Time  `json:"computed_at"`
	SiderealMode string     `json:"sidereal_mode"`
	NodePolicy   NodePolicy `json:"node_policy"`
}

type MNakshatraPosition struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Lord     Body    `json:"lord"`
	Pada     int     `json:"pada"`
	Progress float64 `json:"progress"` // degrees travelled inside the nakshatra
}

type MLagna struct {
	Longitude    float64            `json:"longitude"`
	Sign         Sign               `json:"rashi_index"`
	Rashi        string             `json:"rashi"`
	Degree       float64            `json:"degree"`
	Lord         Body               `json:"lord"`
	NavamsaSign  Sign               `json:"navamsa_index"`
	NavamsaRashi string             `json:"navamsa_rashi"`
	Nakshatra    MNakshatraPosition `json:"nakshatra"`
}

type MGrahaPosition struct {
	Body             Body               `json:"name"`
	Longitude        float64            `json:"longitude"`
	Speed            float64            `json:"speed"`
	Sign             Sign               `json:"rashi_index"`
	Rashi            string             `json:"rashi"`
	Degree           float64            `json:"degree"`
	Nakshatra        MNakshatraPosition `json:"nakshatra"`
	House            int                `json:"bhava_index"`
	Bhava            string             `json:"bhava"`
	Dignity          Dignity            `json:"dignity"`
	FunctionalNature FunctionalNature   `json:"functional_nature"`
	Retrograde       bool               `json:"retrograde"`
	Vargas           map[Divisor]Sign   `json:"vargas"`
	Drishti          []int              `json:"drishti"`
	AspectedHouses   []int              `json:"aspected_houses"`
}

// -----------------------------------------------------------------------------
// Yogas
// -----------------------------------------------------------------------------

type YogaCategory string

const (
	YogaMahapurusha  YogaCategory = "Pancha Mahapurusha"
	YogaLunar        YogaCategory = "Lunar"
	YogaCancellation YogaCategory = "Debilitation Cancellation"
	YogaWealth       YogaCategory = "Wealth"
	YogaPower        YogaCategory = "Power"
	YogaPoverty      YogaCategory = "Poverty"
	YogaMisfortune   YogaCategory = "Misfortune"
	YogaLearning     YogaCategory = "Learning"
)

type MYoga struct {
	Name        string       `json:"name"`
	Category    YogaCategory `json:"category"`
	Bodies      []Body       `json:"bodies"`
	Description string       `json:"description"`
}

// -----------------------------------------------------------------------------
// Dasha
// -----------------------------------------------------------------------------

type MDashaPeriod struct {
	Lord          Body           `json:"lord"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	DurationYears float64        `json:"duration_years"`
	SubPeriods    []MDashaPeriod `json:"sub_periods,omitempty"`
}

type MCurrentDasha struct {
	AsOf            time.Time `json:"as_of"`
	Mahadasha       Body      `json:"mahadasha"`
	Antardasha      Body      `json:"antardasha"`
	Pratyantardasha Body      `json:"pratyantardasha"`
}

type MDashaSchedule struct {
	Nakshatra    MNakshatraPosition `json:"nakshatra"`
	BalanceYears float64            `json:"balance_years"`
	Mahadashas   []MDashaPeriod     `json:"mahadashas"`
	Current      *MCurrentDasha     `json:"current,omitempty"`
}

// -----------------------------------------------------------------------------
// Strength
// -----------------------------------------------------------------------------

// MShadbala holds the contributions in virupas; Rupas = Total / 60.
type MShadbala struct {
	Body        Body    `json:"body"`
	Positional  float64 `json:"positional"`
	Directional float64 `json:"directional"`
	Temporal    float64 `json:"temporal"`
	Motional    float64 `json:"motional"`
	Natural     float64 `json:"natural"`
	Total       float64 `json:"total"`
	Rupas       float64 `json:"rupas"`
	Rank        int     `json:"rank"`
}

type MAshtakavarga struct {
	Houses [NumSigns]int          `json:"houses"`
	ByBody map[Body][NumSigns]int `json:"by_body"`
	Total  int                    `json:"total"`
}

// -----------------------------------------------------------------------------
// Transits and annual return
// -----------------------------------------------------------------------------

type MTransit struct {
	Body             Body    `json:"body"`
	BirthSign        Sign    `json:"birth_sign"`
	CurrentSign      Sign    `json:"current_sign"`
	CurrentLongitude float64 `json:"current_longitude"`
	HouseOffset      int     `json:"house_offset"`
	Effect           string  `json:"effect"`
}

type MTransitReport struct {
	AsOf     time.Time  `json:"as_of"`
	Transits []MTransit `json:"transits"`
}

type MAnnualReturn struct {
	Year               int       `json:"year"`
	JulianDay          float64   `json:"julian_day"`
	Instant            time.Time `json:"instant"`
	SunLongitude       float64   `json:"sun_longitude"`
	Iterations         int       `json:"iterations"`
	AscendantLongitude float64   `json:"ascendant_longitude"`
	AscendantSign      Sign      `json:"ascendant_sign"`
	AscendantRashi     string    `json:"ascendant_rashi"`
	YearLord           Body      `json:"year_lord"`
	MunthaSign         Sign      `json:"muntha_sign"`
	MunthaRashi        string    `json:"muntha_rashi"`
}

// -----------------------------------------------------------------------------
// Argala and Arudha
// -----------------------------------------------------------------------------

type ArgalaStrength string

const (
	ArgalaStrong   ArgalaStrength = "Strong"
	ArgalaModerate ArgalaStrength = "Moderate"
)

type MArgala struct {
	Body        Body           `json:"body"`
	TargetHouse int            `json:"target_house"`
	FromHouse   int            `json:"from_house"` // 2, 4 or 11 counted from the target
	Strength    ArgalaStrength `json:"strength"`
}

type MArudhaPada struct {
	House    int    `json:"house"`
	Sign     Sign   `json:"sign"`
	Rashi    string `json:"rashi"`
	Adjusted bool   `json:"adjusted"`
}

type MArudha struct {
	Lagna MArudhaPada   `json:"arudha_lagna"`
	Padas []MArudhaPada `json:"padas"`
}
