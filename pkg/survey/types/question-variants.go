package types

type Choice struct {
	ID          string `bson:"id" json:"id"`
	Text        string `bson:"text" json:"text"`
	IsExclusive bool   `bson:"isExclusive,omitempty" json:"isExclusive,omitempty"`
}

type MultipleChoice struct {
	AllowMultiple bool     `json:"allowMultiple"`
	Choices       []Choice `json:"choices"`
	DisplayFormat string   `json:"displayFormat"` // vertical, horizontal, dropdown, columns
	ColumnCount   *int     `json:"columnCount,omitempty"`
}

type TextEntry struct {
	Format      string `json:"format"` // singleLine, multiLine, essay, password
	ContentType string `json:"contentType,omitempty"`
}

type FormFieldEntry struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	Size        string `json:"size"` // short, medium, long, essay
	ContentType string `json:"contentType,omitempty"`
}

type FormField struct {
	Fields []FormFieldEntry `json:"fields"`
}

type MatrixRow struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	GroupID string `json:"groupId,omitempty"`
}

type MatrixColumn struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Value *float64 `json:"value,omitempty"`
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScalePoint struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ProfileScale struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Type string  `json:"type"` // stars or slider
}

type MatrixTable struct {
	Rows              []MatrixRow             `json:"rows"`
	Columns           []MatrixColumn          `json:"columns"`
	AllowMultiple     bool                    `json:"allowMultiple"`
	Variation         string                  `json:"variation"` // likert, bipolar, constantSum, textEntry, rankOrder, profile, maxDiff
	Transpose         bool                    `json:"transpose,omitempty"`
	PositionTextAbove bool                    `json:"positionTextAbove,omitempty"`
	RepeatHeaders     int                     `json:"repeatHeaders,omitempty"`
	AddWhitespace     bool                    `json:"addWhitespace,omitempty"`
	MobileFriendly    bool                    `json:"mobileFriendly,omitempty"`
	TableWidth        string                  `json:"tableWidth,omitempty"`
	Groups            []Group                 `json:"groups,omitempty"`
	ScalePoints       []ScalePoint            `json:"scalePoints,omitempty"`
	MinLabel          string                  `json:"minLabel,omitempty"`
	MaxLabel          string                  `json:"maxLabel,omitempty"`
	ProfileScales     map[string]ProfileScale `json:"profileScales,omitempty"`
}

type SideBySideStatement struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type SideBySideChoice struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Value *float64 `json:"value,omitempty"`
}

type SideBySideColumn struct {
	ID          string             `json:"id"`
	Header      string             `json:"header"`
	Type        string             `json:"type"` // singleAnswer, multipleAnswer, dropdown, textEntry
	Choices     []SideBySideChoice `json:"choices,omitempty"`
	TextSize    string             `json:"textSize,omitempty"`
	ContentType string             `json:"contentType,omitempty"`
	Required    bool               `json:"required,omitempty"`
	ColumnLogic *ColumnLogic       `json:"columnLogic,omitempty"`
}

type SideBySide struct {
	Statements    []SideBySideStatement `json:"statements"`
	Columns       []SideBySideColumn    `json:"columns"`
	RepeatHeaders int                   `json:"repeatHeaders,omitempty"`
}

type SliderStatement struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Value *float64 `json:"value,omitempty"`
}

type SliderLabel struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type Slider struct {
	Statements       []SliderStatement `json:"statements"`
	DisplayType      string            `json:"displayType"` // bars, sliders, stars
	Min              float64           `json:"min"`
	Max              float64           `json:"max"`
	Decimals         int               `json:"decimals"`
	Increments       *float64          `json:"increments,omitempty"`
	SnapToIncrements bool              `json:"snapToIncrements"`
	DefaultValue     *float64          `json:"defaultValue,omitempty"`
	ShowValue        bool              `json:"showValue"`
	Labels           []SliderLabel     `json:"labels,omitempty"`
	AllowNA          bool              `json:"allowNA"`
	NALabel          string            `json:"naLabel,omitempty"`
	StarsInteraction string            `json:"starsInteraction,omitempty"`
}

type RankItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Rank *int   `json:"rank,omitempty"`
}

type RankOrder struct {
	Items       []RankItem `json:"items"`
	Format      string     `json:"format"` // dragDrop, radioButtons, textBox, selectBox
	MustRankAll bool       `json:"mustRankAll,omitempty"`
	MinRank     *int       `json:"minRank,omitempty"`
	MaxRank     *int       `json:"maxRank,omitempty"`
}

type ConstantSumItem struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Value *float64 `json:"value,omitempty"`
}

type ConstantSum struct {
	Items         []ConstantSumItem `json:"items"`
	DisplayFormat string            `json:"displayFormat"` // textBoxes, bars, sliders
	MustTotal     *float64          `json:"mustTotal,omitempty"`
	ShowTotal     bool              `json:"showTotal"`
	Unit          string            `json:"unit,omitempty"`
	UnitPosition  string            `json:"unitPosition"`
	MinPerItem    *float64          `json:"minPerItem,omitempty"`
	MaxPerItem    *float64          `json:"maxPerItem,omitempty"`
}

type PickGroupItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	GroupID string `json:"groupId,omitempty"`
	Rank    *int   `json:"rank,omitempty"`
}

type PickGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MinItems *int   `json:"minItems,omitempty"`
	MaxItems *int   `json:"maxItems,omitempty"`
}

type PickGroupRank struct {
	Items              []PickGroupItem `json:"items"`
	Groups             []PickGroup     `json:"groups"`
	Columns            int             `json:"columns,omitempty"`
	StackItems         bool            `json:"stackItems,omitempty"`
	StackItemsInGroups bool            `json:"stackItemsInGroups,omitempty"`
}

type NetPromoter struct {
	MinLabel    string `json:"minLabel,omitempty"`
	MaxLabel    string `json:"maxLabel,omitempty"`
	ScalePreset string `json:"scalePreset,omitempty"`
}

type TextGraphic struct {
	ContentType string `json:"contentType"` // text, graphic, file
	Content     string `json:"content"`
	Caption     string `json:"caption,omitempty"`
	FileName    string `json:"fileName,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type HotSpotRegion struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Shape    string   `json:"shape"` // rectangle or polygon
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Points   []Point  `json:"points,omitempty"`
	Selected *bool    `json:"selected,omitempty"`
	Rating   *string  `json:"rating,omitempty"`
}

type HotSpot struct {
	ImageURL           string          `json:"imageUrl,omitempty"`
	ImageWidth         *float64        `json:"imageWidth,omitempty"`
	ImageHeight        *float64        `json:"imageHeight,omitempty"`
	Mode               string          `json:"mode"` // onOff or likeDislike
	Regions            []HotSpotRegion `json:"regions"`
	MinRegions         *int            `json:"minRegions,omitempty"`
	MaxRegions         *int            `json:"maxRegions,omitempty"`
	ShowRegionOutlines bool            `json:"showRegionOutlines,omitempty"`
}

type HeatmapClick struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	RegionID string  `json:"regionId,omitempty"`
}

type HeatmapRegion struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Heatmap struct {
	ImageURL    string          `json:"imageUrl,omitempty"`
	ImageWidth  *float64        `json:"imageWidth,omitempty"`
	ImageHeight *float64        `json:"imageHeight,omitempty"`
	MaxClicks   int             `json:"maxClicks"`
	Clicks      []HeatmapClick  `json:"clicks"`
	Regions     []HeatmapRegion `json:"regions,omitempty"`
}

type PageBreak struct{}

func (*MultipleChoice) QuestionType() QuestionType { return QUESTION_TYPE_MULTIPLE_CHOICE }
func (*TextEntry) QuestionType() QuestionType      { return QUESTION_TYPE_TEXT_ENTRY }
func (*FormField) QuestionType() QuestionType      { return QUESTION_TYPE_FORM_FIELD }
func (*MatrixTable) QuestionType() QuestionType    { return QUESTION_TYPE_MATRIX_TABLE }
func (*SideBySide) QuestionType() QuestionType     { return QUESTION_TYPE_SIDE_BY_SIDE }
func (*Slider) QuestionType() QuestionType         { return QUESTION_TYPE_SLIDER }
func (*RankOrder) QuestionType() QuestionType      { return QUESTION_TYPE_RANK_ORDER }
func (*ConstantSum) QuestionType() QuestionType    { return QUESTION_TYPE_CONSTANT_SUM }
func (*PickGroupRank) QuestionType() QuestionType  { return QUESTION_TYPE_PICK_GROUP_RANK }
func (*NetPromoter) QuestionType() QuestionType    { return QUESTION_TYPE_NET_PROMOTER }
func (*TextGraphic) QuestionType() QuestionType    { return QUESTION_TYPE_TEXT_GRAPHIC }
func (*HotSpot) QuestionType() QuestionType        { return QUESTION_TYPE_HOT_SPOT }
func (*Heatmap) QuestionType() QuestionType        { return QUESTION_TYPE_HEATMAP }
func (*PageBreak) QuestionType() QuestionType      { return QUESTION_TYPE_PAGE_BREAK }

func (*MultipleChoice) isQuestionBody() {}
func (*TextEntry) isQuestionBody()      {}
func (*FormField) isQuestionBody()      {}
func (*MatrixTable) isQuestionBody()    {}
func (*SideBySide) isQuestionBody()     {}
func (*Slider) isQuestionBody()         {}
func (*RankOrder) isQuestionBody()      {}
func (*ConstantSum) isQuestionBody()    {}
func (*PickGroupRank) isQuestionBody()  {}
func (*NetPromoter) isQuestionBody()    {}
func (*TextGraphic) isQuestionBody()    {}
func (*HotSpot) isQuestionBody()        {}
func (*Heatmap) isQuestionBody()        {}
func (*PageBreak) isQuestionBody()      {}
