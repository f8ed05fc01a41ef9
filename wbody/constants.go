package wbody

const (
	nearzero  = 1e-8
	mmkm2     = 1e6 // [km km²] to [mm km²]
	secperday = 86400.
	kmperday  = 86.4 // [m/s] to [km/d]
	minbf     = 0.05 // bankfull floor [m³/s]
	minvel    = 1e-5 // [km/d]
	meltrate  = 4.   // degree-day factor [mm/°C/d]
)
