// Package tick defines the core data schema stored inside the database: the
// Tick record itself, its trade-condition tag, and the fixed-width wire
// encoding external collaborators use to mem-copy records in and out of the
// process.
package tick

// Condition is a closed 8-bit enumeration of trade-condition tags. The
// numeric codes match the source system's classification but are not
// contractual; only the named set is.
type Condition uint8

const (
	None Condition = iota
	RegularSale
	Acquisition
	AveragePriceTrade
	AutomaticExecution
	BunchedTrade
	BunchedSoldTrade
	CashSale
	ClosingPrints
	CrossTrade
	DerivativelyPriced
	Distribution
	NextDay
	Seller
	PriorReferencePrice
	IntradayDetail
	ContingentTrade
	OddLotTrade
	StoppedStock
	VolumeWeightedAverage
	IntermarketSweep
	FormT
	OpeningPrints
	OutOfSequence
	SoldLast
	MarketCenterOfficialClose
	MarketCenterOfficialOpen
	CorrectedConsolidatedClose
	Cancelled
)

func (c Condition) String() string {
	switch c {
	case None:
		return "NONE"
	case RegularSale:
		return "REGULAR_SALE"
	case Acquisition:
		return "ACQUISITION"
	case AveragePriceTrade:
		return "AVERAGE_PRICE_TRADE"
	case AutomaticExecution:
		return "AUTOMATIC_EXECUTION"
	case BunchedTrade:
		return "BUNCHED_TRADE"
	case BunchedSoldTrade:
		return "BUNCHED_SOLD_TRADE"
	case CashSale:
		return "CASH_SALE"
	case ClosingPrints:
		return "CLOSING_PRINTS"
	case CrossTrade:
		return "CROSS_TRADE"
	case DerivativelyPriced:
		return "DERIVATIVELY_PRICED"
	case Distribution:
		return "DISTRIBUTION"
	case NextDay:
		return "NEXT_DAY"
	case Seller:
		return "SELLER"
	case PriorReferencePrice:
		return "PRIOR_REFERENCE_PRICE"
	case IntradayDetail:
		return "INTRADAY_DETAIL"
	case ContingentTrade:
		return "CONTINGENT_TRADE"
	case OddLotTrade:
		return "ODD_LOT_TRADE"
	case StoppedStock:
		return "STOPPED_STOCK"
	case VolumeWeightedAverage:
		return "VOLUME_WEIGHTED_AVERAGE"
	case IntermarketSweep:
		return "INTERMARKET_SWEEP"
	case FormT:
		return "FORM_T"
	case OpeningPrints:
		return "OPENING_PRINTS"
	case OutOfSequence:
		return "OUT_OF_SEQUENCE"
	case SoldLast:
		return "SOLD_LAST"
	case MarketCenterOfficialClose:
		return "MARKET_CENTER_OFFICIAL_CLOSE"
	case MarketCenterOfficialOpen:
		return "MARKET_CENTER_OFFICIAL_OPEN"
	case CorrectedConsolidatedClose:
		return "CORRECTED_CONSOLIDATED_CLOSE"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
