package report

// State identifies where the report picker flow currently is.
type State int

const (
	StateIdle State = iota
	StateOptionsLoading
	StateOptionsReady
	StatePreviewLoading
	StatePreviewReady
	StateDownloadLoading
)

// Session is the report picker state machine. Selections live in an
// explicit struct rather than ambient UI state; switching the
// criterion resets every dependent selection.
type Session struct {
	State            State
	Criterion        Criterion
	Value            string
	BuildingName     string
	ApartmentNumbers []string
	StartDate        string
	EndDate          string
	Options          []Option
	PreviewRows      []Row

	prevState State
}

// NewSession returns an idle session with no selections.
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// SelectCriterion picks the primary criterion, resetting value,
// building, apartments, dates and preview, and re-enters options
// loading.
func (s *Session) SelectCriterion(c Criterion) {
	s.Criterion = c
	s.Value = ""
	s.BuildingName = ""
	s.ApartmentNumbers = nil
	s.StartDate = ""
	s.EndDate = ""
	s.Options = nil
	s.PreviewRows = nil
	s.State = StateOptionsLoading
}

// OptionsLoaded stores resolver output and readies the pickers.
func (s *Session) OptionsLoaded(options []Option) {
	s.Options = options
	s.State = StateOptionsReady
}

// SelectBuilding scopes the apartment picker to the building and
// triggers a secondary options load.
func (s *Session) SelectBuilding(name string) {
	s.BuildingName = name
	s.ApartmentNumbers = nil
	s.State = StateOptionsLoading
}

// SelectValue records the chosen primary value.
func (s *Session) SelectValue(v string) {
	s.Value = v
}

// SetApartments records the apartment subset selection.
func (s *Session) SetApartments(numbers []string) {
	s.ApartmentNumbers = numbers
}

// SetDateRange records the calendar-inclusive date bounds.
func (s *Session) SetDateRange(start, end string) {
	s.StartDate = start
	s.EndDate = end
}

// CanPreview reports whether the current selections are complete
// enough to run a preview or download.
func (s *Session) CanPreview() bool {
	switch s.Criterion {
	case CriterionPhone, CriterionApartment:
		return s.Value != ""
	case CriterionBuilding:
		return s.BuildingName != "" || len(s.ApartmentNumbers) > 0 || s.Value != ""
	case CriterionDate:
		return s.StartDate != "" && s.EndDate != ""
	default:
		return false
	}
}

// CanDownload mirrors CanPreview; download does not require a prior
// preview.
func (s *Session) CanDownload() bool {
	return s.CanPreview()
}

// BeginPreview enters preview loading if the readiness predicate holds.
func (s *Session) BeginPreview() bool {
	if !s.CanPreview() {
		return false
	}
	s.State = StatePreviewLoading
	return true
}

// PreviewLoaded stores the preview rows.
func (s *Session) PreviewLoaded(rows []Row) {
	s.PreviewRows = rows
	s.State = StatePreviewReady
}

// PreviewFailed clears the preview and surfaces an empty-result state
// rather than a hard error.
func (s *Session) PreviewFailed() {
	s.PreviewRows = nil
	s.State = StateOptionsReady
}

// BeginDownload enters download loading if the readiness predicate
// holds.
func (s *Session) BeginDownload() bool {
	if !s.CanDownload() {
		return false
	}
	s.prevState = s.State
	s.State = StateDownloadLoading
	return true
}

// DownloadFinished returns the flow to idle.
func (s *Session) DownloadFinished() {
	s.State = StateIdle
}

// DownloadFailed leaves prior selections and preview untouched.
func (s *Session) DownloadFailed() {
	s.State = s.prevState
}

// Params assembles the filter parameters from the current selections.
func (s *Session) Params() Params {
	return Params{
		Criterion:        s.Criterion,
		Value:            s.Value,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		BuildingName:     s.BuildingName,
		ApartmentNumbers: s.ApartmentNumbers,
	}
}
