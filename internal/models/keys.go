package models

// SetID lets the generic catalog code pin a master record to the id
// taken from the request path.
func (c *Client) SetID(id uint)         { c.ID = id }
func (s *Supplier) SetID(id uint)       { s.ID = id }
func (p *Product) SetID(id uint)        { p.ID = id }
func (v *Vehicle) SetID(id uint)        { v.ID = id }
func (e *HeavyEquipment) SetID(id uint) { e.ID = id }
func (e *Employee) SetID(id uint)       { e.ID = id }
